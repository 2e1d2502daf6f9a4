package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/suykerbuyk/note-connections/internal/analyzer"
	"github.com/suykerbuyk/note-connections/internal/archive"
	"github.com/suykerbuyk/note-connections/internal/check"
	"github.com/suykerbuyk/note-connections/internal/config"
	"github.com/suykerbuyk/note-connections/internal/help"
	"github.com/suykerbuyk/note-connections/internal/logging"
	"github.com/suykerbuyk/note-connections/internal/plugin"
	"github.com/suykerbuyk/note-connections/internal/settingsui"
	"github.com/suykerbuyk/note-connections/internal/vault"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Subcommand --help short-circuits before any config load.
	if cmd, ok := help.Lookup(os.Args[1]); ok && hasFlag(os.Args[2:], "--help", "-h") {
		fmt.Print(help.FormatTerminal(cmd))
		return
	}

	switch os.Args[1] {
	case "analyze":
		if err := runAnalyze(os.Args[2:]); err != nil {
			// Already reported through a notice and the log.
			os.Exit(1)
		}

	case "settings":
		runSettings()

	case "init":
		runInit(os.Args[2:])

	case "check":
		runCheck()

	case "runs":
		runRuns(os.Args[2:])

	case "version":
		fmt.Printf("vc v%s (note-connections)\n", help.Version)

	case "help", "--help", "-h":
		if len(os.Args) > 2 {
			if cmd, ok := help.Lookup(os.Args[2]); ok {
				fmt.Print(help.FormatTerminal(cmd))
				return
			}
		}
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func runAnalyze(args []string) error {
	cfg := loadConfig()

	sampleSize := cfg.SampleSize
	if v := flagValue(args, "-n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fatal("-n: expected a positive integer, got %q", v)
		}
		sampleSize = n
	}
	verbose := hasFlag(args, "--verbose")

	logger := logging.New(os.Stderr, verbose)
	defer logger.Sync()

	client := analyzer.New()
	client.BaseURL = cfg.API.BaseURL

	opts := []plugin.Option{
		plugin.WithLogger(logger),
		plugin.WithSampleSize(sampleSize),
	}
	if cfg.Archive.Enabled {
		opts = append(opts, plugin.WithRecorder(archive.Store{Dir: cfg.RunsDir(), Compress: cfg.Archive.Compress}))
	}
	if hasFlag(args, "--no-open") {
		opts = append(opts, plugin.WithoutOpen())
	}

	p := plugin.New(vault.New(cfg.VaultPath, config.SettingsPath(), cfg.Open.Command), client, opts...)
	if err := p.Load(); err != nil {
		fatal("%v", err)
	}
	defer p.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("running action", zap.String("action", plugin.AnalyzeAction.ID), zap.String("vault", cfg.VaultPath))
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Printf("skipped: %s\n", result.Reason)
		return nil
	}
	fmt.Printf("created: %s (%d notes)\n", result.Report.Path, len(result.Notes))
	return nil
}

func runSettings() {
	cfg := loadConfig()

	p := plugin.New(vault.New(cfg.VaultPath, config.SettingsPath(), ""), analyzer.New())
	if err := p.Load(); err != nil {
		fatal("%v", err)
	}
	defer p.Unload()

	panel := p.Panels()[0]
	if _, err := settingsui.Run(panel, p.Settings().APIKey, p.SetAPIKey); err != nil {
		fatal("settings: %v", err)
	}
}

func runInit(args []string) {
	if len(args) < 1 {
		fatal("usage: vc init <vault>")
	}
	abs, err := filepath.Abs(args[0])
	if err != nil {
		fatal("resolve path: %v", err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		fatal("%s is not a directory", abs)
	}

	path, action, err := config.WriteDefault(abs)
	if err != nil {
		fatal("%v", err)
	}
	switch action {
	case "created":
		fmt.Printf("created: %s\n", config.CompressHome(path))
	default:
		fmt.Printf("exists: %s (unchanged)\n", config.CompressHome(path))
	}
}

func runCheck() {
	cfg := loadConfig()
	report := check.Run(cfg)
	fmt.Print(report.Format())
	if report.HasFailures() {
		os.Exit(1)
	}
}

func runRuns(args []string) {
	cfg := loadConfig()
	verbose := hasFlag(args, "--verbose")

	records, err := archive.Store{Dir: cfg.RunsDir()}.List()
	if err != nil {
		fatal("list runs: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("no runs archived")
		return
	}

	for _, r := range records {
		detail := r.ReportPath
		if r.Error != "" {
			detail = r.Error
		}
		fmt.Printf("%s  %-5s  %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.State, detail)
		if verbose {
			fmt.Printf("    %s\n", r.ID)
			for _, title := range r.Notes {
				fmt.Printf("    - %s\n", title)
			}
		}
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

func usage() {
	fmt.Fprint(os.Stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, flag+"="); ok {
			return v
		}
	}
	return ""
}

func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}
	return false
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vc: "+format+"\n", args...)
	os.Exit(1)
}
