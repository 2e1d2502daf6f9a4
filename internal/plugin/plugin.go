// Package plugin wires the note-connections workflow to a host: it owns the
// settings record, registers the analyze action and settings panel, and runs
// sample -> prompt -> analyze -> write -> open on demand.
package plugin

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suykerbuyk/note-connections/internal/archive"
	"github.com/suykerbuyk/note-connections/internal/config"
	"github.com/suykerbuyk/note-connections/internal/host"
)

// DefaultSampleSize is how many notes a run analyzes.
const DefaultSampleSize = 10

// User-facing notices.
const (
	MsgMissingKey = "Please set your OpenAI API key in the plugin settings"
	MsgNoNotes    = "No notes found to analyze"
	MsgAnalyzing  = "Analyzing notes..."
	MsgComplete   = "Analysis complete!"
	MsgFailed     = "Error analyzing notes. Check console for details."
)

// Analyzer turns a prompt into analysis text.
type Analyzer interface {
	Analyze(ctx context.Context, apiKey, prompt string) (string, error)
}

// Recorder persists the diagnostic record of a run.
type Recorder interface {
	Save(rec archive.Record) (string, error)
}

// Action is a user-triggerable command registered with the host.
type Action struct {
	ID    string
	Icon  string
	Label string
}

// Panel describes the settings panel registered with the host.
type Panel struct {
	Title  string
	Fields []Field
}

// Field is one input of the settings panel.
type Field struct {
	Key         string
	Name        string
	Description string
	Placeholder string
	Secret      bool
}

// AnalyzeAction is the single action the plugin registers.
var AnalyzeAction = Action{
	ID:    "analyze-note-connections",
	Icon:  "network",
	Label: "Analyze Note Connections",
}

// SettingsPanel is the settings panel the plugin registers.
var SettingsPanel = Panel{
	Title: "Note Connections Settings",
	Fields: []Field{{
		Key:         "api_key",
		Name:        "OpenAI API Key",
		Description: "Your OpenAI API key",
		Placeholder: "sk-...",
		Secret:      true,
	}},
}

// Option customizes a Plugin.
type Option func(*Plugin)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder archives a record of every run that gets past the pre-flight checks.
func WithRecorder(r Recorder) Option {
	return func(p *Plugin) { p.recorder = r }
}

// WithSampleSize overrides DefaultSampleSize; non-positive values are ignored.
func WithSampleSize(n int) Option {
	return func(p *Plugin) {
		if n > 0 {
			p.sampleSize = n
		}
	}
}

// WithRand makes sampling deterministic. The source is not safe for
// overlapping runs.
func WithRand(r *rand.Rand) Option {
	return func(p *Plugin) { p.rng = r }
}

// WithClock overrides time.Now for report names and run records.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) {
		if now != nil {
			p.now = now
		}
	}
}

// WithoutOpen skips opening the report after it is written.
func WithoutOpen() Option {
	return func(p *Plugin) { p.openReport = false }
}

// Plugin holds the settings record and registrations for one host.
type Plugin struct {
	host       host.Host
	analyzer   Analyzer
	logger     *zap.Logger
	recorder   Recorder
	sampleSize int
	rng        *rand.Rand
	now        func() time.Time
	openReport bool

	mu       sync.Mutex
	settings config.Settings
	loaded   bool
	actions  []Action
	panels   []Panel
	state    State
}

// New returns an unloaded Plugin.
func New(h host.Host, a Analyzer, opts ...Option) *Plugin {
	p := &Plugin{
		host:       h,
		analyzer:   a,
		logger:     zap.NewNop(),
		sampleSize: DefaultSampleSize,
		now:        time.Now,
		openReport: true,
		settings:   config.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads the persisted settings over the defaults and registers the
// action and settings panel.
func (p *Plugin) Load() error {
	data, err := p.host.LoadData()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s, err := config.ParseSettings(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
	p.actions = []Action{AnalyzeAction}
	p.panels = []Panel{SettingsPanel}
	p.loaded = true
	p.logger.Debug("plugin loaded", zap.Bool("api_key_set", s.APIKey != ""))
	return nil
}

// Unload drops the registrations.
func (p *Plugin) Unload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = nil
	p.panels = nil
	p.loaded = false
	p.logger.Debug("plugin unloaded")
}

// Loaded reports whether Load succeeded and Unload has not been called since.
func (p *Plugin) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Actions returns the registered actions.
func (p *Plugin) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Action(nil), p.actions...)
}

// Panels returns the registered settings panels.
func (p *Plugin) Panels() []Panel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Panel(nil), p.panels...)
}

// Settings returns a copy of the current settings.
func (p *Plugin) Settings() config.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SetAPIKey is the settings panel change handler: it updates the record and
// persists it immediately.
func (p *Plugin) SetAPIKey(key string) error {
	p.mu.Lock()
	p.settings.APIKey = key
	s := p.settings
	p.mu.Unlock()

	data, err := config.EncodeSettings(s)
	if err != nil {
		return err
	}
	if err := p.host.SaveData(data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// State returns the phase of the most recent run.
func (p *Plugin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Plugin) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
