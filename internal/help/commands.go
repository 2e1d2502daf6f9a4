package help

// Version is the vc release version, set at build time via -ldflags.
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--no-open" or "-n <count>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string
	Desc     string
	Optional bool
}

// Command describes a vc subcommand.
type Command struct {
	Name        string
	Synopsis    string // lowercase, for the --help header
	Brief       string // capitalized, for the usage table
	Usage       string
	TableUsage  string // shortened usage for the table, if different
	Args        []Arg
	Flags       []Flag
	Description string
	Examples    []string
}

func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// TopLevel is the vc binary itself.
var TopLevel = Command{
	Synopsis: "find connections between random notes in an Obsidian vault",
}

var CmdAnalyze = Command{
	Name:       "analyze",
	Synopsis:   "analyze connections between randomly sampled notes",
	Brief:      "Sample notes and write a connections report",
	Usage:      "vc analyze [-n <count>] [--no-open] [--verbose]",
	TableUsage: "vc analyze [-n <count>]",
	Flags: []Flag{
		{Name: "-n <count>", Desc: "Number of notes to sample (default: sample_size from config)"},
		{Name: "--no-open", Desc: "Do not open the report after writing it"},
		{Name: "--verbose", Desc: "Log debug records to stderr"},
	},
	Description: `Picks random notes from the vault, sends their text to the chat
completions API with the saved API key, and writes the answer to a new
note named "Note Connections Analysis YYYY-MM-DD.md" at the vault root.
The new note links every analyzed note and is opened in Obsidian.

An existing report with the same date is never overwritten; the run
fails instead. Runs are archived under .note-connections/runs/.`,
	Examples: []string{
		"vc analyze              Sample the configured number of notes",
		"vc analyze -n 5         Sample five notes",
		"vc analyze --no-open    Write the report without opening it",
	},
}

var CmdSettings = Command{
	Name:     "settings",
	Synopsis: "edit the plugin settings",
	Brief:    "Edit the OpenAI API key",
	Usage:    "vc settings",
	Description: `Opens the settings panel in the terminal. Every edit is saved
immediately to ~/.config/note-connections/settings.toml (mode 0600).
Press Enter or Esc to close, Ctrl+R to reveal the key.`,
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "write a default config for a vault",
	Brief:    "Write default config pointing at a vault",
	Usage:    "vc init <vault>",
	Args: []Arg{
		{Name: "vault", Desc: "Path to an existing Obsidian vault"},
	},
	Description: `Writes ~/.config/note-connections/config.toml with vault_path set to
the given directory. An existing config is left untouched.`,
	Examples: []string{
		"vc init ~/obsidian/notes",
	},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "validate config, vault, and settings",
	Brief:    "Validate config, vault, and settings",
	Usage:    "vc check",
	Description: `Runs diagnostic checks and prints a pass/warn/FAIL report:
config file, vault directory, .obsidian/, note count, API key,
state directory, archived runs, and the open command.

Exits 1 if any check fails.`,
}

var CmdRuns = Command{
	Name:     "runs",
	Synopsis: "list archived analysis runs",
	Brief:    "List archived analysis runs",
	Usage:    "vc runs [--verbose]",
	Flags: []Flag{
		{Name: "--verbose", Desc: "Also print the analyzed note titles"},
	},
	Description: `Lists run records from .note-connections/runs/ in start order with
their state and report path.`,
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "vc version",
}

// Subcommands lists the commands shown in the usage table, in order.
var Subcommands = []Command{
	CmdAnalyze,
	CmdSettings,
	CmdInit,
	CmdCheck,
	CmdRuns,
	CmdVersion,
}

// Lookup returns the subcommand with the given name.
func Lookup(name string) (Command, bool) {
	for _, c := range Subcommands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
