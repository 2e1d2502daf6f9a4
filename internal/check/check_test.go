package check

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/suykerbuyk/note-connections/internal/archive"
	"github.com/suykerbuyk/note-connections/internal/config"
	"github.com/suykerbuyk/note-connections/internal/host"
)

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if r := CheckConfig(path); r.Status != Warn {
		t.Errorf("missing config: expected Warn, got %s: %s", r.Status, r.Detail)
	}
	os.WriteFile(path, []byte(`vault_path = "/v"`), 0o644)
	if r := CheckConfig(path); r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckVaultPath_Pass(t *testing.T) {
	r := CheckVaultPath(t.TempDir())
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckVaultPath_Fail(t *testing.T) {
	r := CheckVaultPath("/nonexistent/vault/path")
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckObsidian(t *testing.T) {
	dir := t.TempDir()
	if r := CheckObsidian(dir); r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
	os.Mkdir(filepath.Join(dir, ".obsidian"), 0o755)
	if r := CheckObsidian(dir); r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckNotes(t *testing.T) {
	r := CheckNotes(host.NewFake(map[string]string{"a.md": "", "b.md": ""}))
	if r.Status != Pass || r.Detail != "2 notes" {
		t.Errorf("got %s: %s", r.Status, r.Detail)
	}

	if r := CheckNotes(host.NewFake(nil)); r.Status != Warn {
		t.Errorf("empty vault: expected Warn, got %s", r.Status)
	}

	broken := host.NewFake(nil)
	broken.ListErr = errors.New("permission denied")
	if r := CheckNotes(broken); r.Status != Fail {
		t.Errorf("list error: expected Fail, got %s", r.Status)
	}
}

func TestCheckSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	if r := CheckSettings(path); r.Status != Warn {
		t.Errorf("missing: expected Warn, got %s: %s", r.Status, r.Detail)
	}

	os.WriteFile(path, []byte(`api_key = ""`), 0o600)
	if r := CheckSettings(path); r.Status != Warn {
		t.Errorf("empty key: expected Warn, got %s: %s", r.Status, r.Detail)
	}

	os.WriteFile(path, []byte(`api_key = "sk-test"`), 0o600)
	if r := CheckSettings(path); r.Status != Pass {
		t.Errorf("key set: expected Pass, got %s: %s", r.Status, r.Detail)
	}

	os.Chmod(path, 0o644)
	if r := CheckSettings(path); r.Status != Warn || !strings.Contains(r.Detail, "644") {
		t.Errorf("loose mode: expected Warn, got %s: %s", r.Status, r.Detail)
	}

	os.WriteFile(path, []byte(`api_key = [`), 0o600)
	if r := CheckSettings(path); r.Status != Fail {
		t.Errorf("invalid: expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckStateDir(t *testing.T) {
	if r := CheckStateDir(t.TempDir()); r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r := CheckStateDir("/nonexistent/state"); r.Status != Warn {
		t.Errorf("expected Warn, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckRuns(t *testing.T) {
	store := archive.Store{Dir: t.TempDir(), Compress: true}

	if r := CheckRuns(store); r.Status != Pass || r.Detail != "none archived" {
		t.Errorf("empty: got %s: %s", r.Status, r.Detail)
	}

	base := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	store.Save(archive.Record{ID: "r1", StartedAt: base, State: "done"})
	store.Save(archive.Record{ID: "r2", StartedAt: base.Add(time.Hour), State: "error"})

	r := CheckRuns(store)
	if r.Status != Warn {
		t.Errorf("last failed: expected Warn, got %s: %s", r.Status, r.Detail)
	}
	if r.Detail != "2 archived, last 2026-10-16 09:00 (error)" {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckOpener(t *testing.T) {
	if r := CheckOpener(""); r.Status != Pass || r.Detail != "disabled" {
		t.Errorf("disabled: got %s: %s", r.Status, r.Detail)
	}
	if r := CheckOpener("definitely-not-a-real-opener-cmd"); r.Status != Warn {
		t.Errorf("missing: expected Warn, got %s", r.Status)
	}
}

func TestReport_HasFailures(t *testing.T) {
	r := Report{Results: []Result{{Name: "a", Status: Pass}, {Name: "b", Status: Fail}}}
	if !r.HasFailures() {
		t.Error("expected HasFailures() == true")
	}
	r = Report{Results: []Result{{Name: "a", Status: Pass}, {Name: "b", Status: Warn}}}
	if r.HasFailures() {
		t.Error("expected HasFailures() == false")
	}
}

func TestReport_Format(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "vault", Status: Pass, Detail: "~/notes"},
		{Name: "api key", Status: Warn, Detail: "not set"},
	}}
	want := "vc check\n\n" +
		"  pass  vault    ~/notes\n" +
		"  warn  api key  not set\n" +
		"\n1 passed, 1 warning, 0 failure\n"
	if got := r.Format(); got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_Integration(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	vaultDir := t.TempDir()
	os.Mkdir(filepath.Join(vaultDir, ".obsidian"), 0o755)
	os.WriteFile(filepath.Join(vaultDir, "note.md"), []byte("# Note"), 0o644)

	cfg := config.DefaultConfig()
	cfg.VaultPath = vaultDir
	cfg.Open.Command = ""

	report := Run(cfg)
	if report.HasFailures() {
		t.Errorf("unexpected failures:\n%s", report.Format())
	}

	names := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		names = append(names, r.Name)
	}
	want := "config,vault,obsidian,notes,api key,state,runs,opener"
	if strings.Join(names, ",") != want {
		t.Errorf("checks = %s, want %s", strings.Join(names, ","), want)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Pass, "pass"},
		{Warn, "warn"},
		{Fail, "FAIL"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
