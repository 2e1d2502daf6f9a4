package check

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/suykerbuyk/note-connections/internal/archive"
	"github.com/suykerbuyk/note-connections/internal/config"
	"github.com/suykerbuyk/note-connections/internal/host"
	"github.com/suykerbuyk/note-connections/internal/vault"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "vc check\n\n  no checks ran\n"
	}

	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("vc check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Missing config is fine:
// defaults apply.
func CheckConfig(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return Result{Name: "config", Status: Warn, Detail: config.CompressHome(path) + " not found (using defaults)"}
	}
	return Result{Name: "config", Status: Pass, Detail: config.CompressHome(path)}
}

// CheckVaultPath checks whether the vault directory exists.
func CheckVaultPath(path string) Result {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Result{Name: "vault", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "vault", Status: Fail, Detail: path + " not found"}
}

// CheckObsidian checks whether .obsidian/ exists inside the vault.
func CheckObsidian(path string) Result {
	obsDir := filepath.Join(path, ".obsidian")
	if info, err := os.Stat(obsDir); err == nil && info.IsDir() {
		return Result{Name: "obsidian", Status: Pass, Detail: ".obsidian/ found"}
	}
	return Result{Name: "obsidian", Status: Warn, Detail: ".obsidian/ not found (not yet opened in Obsidian)"}
}

// CheckNotes counts the documents a run could sample from.
func CheckNotes(h host.Host) Result {
	docs, err := h.ListDocuments(context.Background())
	if err != nil {
		return Result{Name: "notes", Status: Fail, Detail: err.Error()}
	}
	if len(docs) == 0 {
		return Result{Name: "notes", Status: Warn, Detail: "no notes to analyze"}
	}
	return Result{Name: "notes", Status: Pass, Detail: fmt.Sprintf("%d notes", len(docs))}
}

// CheckSettings validates the persisted settings blob and reports whether an
// API key is set.
func CheckSettings(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Name: "api key", Status: Warn, Detail: "not set (run: vc settings)"}
	}
	s, err := config.ParseSettings(data)
	if err != nil {
		return Result{Name: "api key", Status: Fail, Detail: config.CompressHome(path) + " invalid TOML"}
	}
	if s.APIKey == "" {
		return Result{Name: "api key", Status: Warn, Detail: "not set (run: vc settings)"}
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0o077 != 0 {
		return Result{Name: "api key", Status: Warn, Detail: fmt.Sprintf("set, but %s is mode %o", config.CompressHome(path), info.Mode().Perm())}
	}
	return Result{Name: "api key", Status: Pass, Detail: "set"}
}

// CheckStateDir checks whether the .note-connections state directory exists.
func CheckStateDir(stateDir string) Result {
	if info, err := os.Stat(stateDir); err == nil && info.IsDir() {
		return Result{Name: "state", Status: Pass, Detail: "." + config.AppName + "/ found"}
	}
	return Result{Name: "state", Status: Warn, Detail: "." + config.AppName + "/ not found (no runs yet)"}
}

// CheckRuns summarizes archived run records.
func CheckRuns(store archive.Store) Result {
	records, err := store.List()
	if err != nil {
		return Result{Name: "runs", Status: Fail, Detail: err.Error()}
	}
	if len(records) == 0 {
		return Result{Name: "runs", Status: Pass, Detail: "none archived"}
	}
	last := records[len(records)-1]
	detail := fmt.Sprintf("%d archived, last %s (%s)", len(records), last.StartedAt.Format("2006-01-02 15:04"), last.State)
	if last.State != "done" {
		return Result{Name: "runs", Status: Warn, Detail: detail}
	}
	return Result{Name: "runs", Status: Pass, Detail: detail}
}

// CheckOpener checks that the configured open command is on PATH.
func CheckOpener(command string) Result {
	if command == "" {
		return Result{Name: "opener", Status: Pass, Detail: "disabled"}
	}
	if p, err := exec.LookPath(command); err == nil {
		return Result{Name: "opener", Status: Pass, Detail: p}
	}
	return Result{Name: "opener", Status: Warn, Detail: command + " not found on PATH"}
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfig(config.ConfigPath()))
	results = append(results, CheckVaultPath(cfg.VaultPath))
	results = append(results, CheckObsidian(cfg.VaultPath))
	results = append(results, CheckNotes(vault.New(cfg.VaultPath, config.SettingsPath(), "")))
	results = append(results, CheckSettings(config.SettingsPath()))
	results = append(results, CheckStateDir(cfg.StateDir()))
	results = append(results, CheckRuns(archive.Store{Dir: cfg.RunsDir()}))
	results = append(results, CheckOpener(cfg.Open.Command))

	return Report{Results: results}
}
