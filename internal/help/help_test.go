package help

import (
	"strings"
	"testing"
)

func TestFormatTerminal_Init(t *testing.T) {
	want := "vc init - write a default config for a vault\n" +
		"\n" +
		"Usage: vc init <vault>\n" +
		"\n" +
		"Arguments:\n" +
		"  vault   Path to an existing Obsidian vault\n" +
		"\n" +
		"Writes ~/.config/note-connections/config.toml with vault_path set to\n" +
		"the given directory. An existing config is left untouched.\n" +
		"\n" +
		"Examples:\n" +
		"  vc init ~/obsidian/notes\n"
	if got := FormatTerminal(CmdInit); got != want {
		t.Errorf("FormatTerminal(init) mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTerminal_FlagsAligned(t *testing.T) {
	out := FormatTerminal(CmdAnalyze)
	for _, line := range []string{
		"  -n <count>   Number of notes to sample (default: sample_size from config)",
		"  --no-open    Do not open the report after writing it",
		"  --verbose    Log debug records to stderr",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in:\n%s", line, out)
		}
	}
}

func TestFormatTerminal_NoOptionalSections(t *testing.T) {
	out := FormatTerminal(CmdVersion)
	want := "vc version - print version\n\nUsage: vc version\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestFormatUsage(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	out := FormatUsage(TopLevel, Subcommands)

	if !strings.HasPrefix(out, "vc v1.2.3 - find connections between random notes in an Obsidian vault\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "  vc analyze [-n <count>]   Sample notes and write a connections report\n") {
		t.Errorf("analyze row not aligned:\n%s", out)
	}
	if !strings.Contains(out, "  vc help [command]         Show help\n") {
		t.Errorf("help row not aligned:\n%s", out)
	}
	for _, c := range Subcommands {
		if !strings.Contains(out, c.Brief) {
			t.Errorf("usage missing %s", c.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("runs")
	if !ok || c.Usage != "vc runs [--verbose]" {
		t.Errorf("Lookup(runs) = %+v, %v", c, ok)
	}
	if _, ok := Lookup("hook"); ok {
		t.Error("Lookup(hook) should fail")
	}
}

func TestSubcommandsComplete(t *testing.T) {
	for _, c := range Subcommands {
		if c.Name == "" || c.Synopsis == "" || c.Brief == "" || c.Usage == "" {
			t.Errorf("incomplete command descriptor: %+v", c)
		}
		if !strings.HasPrefix(c.Usage, "vc "+c.Name) {
			t.Errorf("%s usage %q does not start with its name", c.Name, c.Usage)
		}
	}
}
