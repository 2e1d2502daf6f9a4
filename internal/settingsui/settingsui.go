// Package settingsui is the terminal settings panel: one masked text input
// bound to the API key. Every edit is handed to the change callback, which
// persists it.
package settingsui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/suykerbuyk/note-connections/internal/plugin"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	nameStyle  = lipgloss.NewStyle().Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(1, 2)
)

// Model is the bubbletea model of the settings panel.
type Model struct {
	panel    plugin.Panel
	field    plugin.Field
	input    textinput.Model
	onChange func(string) error

	edited bool
	err    error
}

// New builds the panel for the first field of panel, prefilled with current.
func New(panel plugin.Panel, current string, onChange func(string) error) Model {
	var field plugin.Field
	if len(panel.Fields) > 0 {
		field = panel.Fields[0]
	}

	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	ti.CharLimit = 512
	ti.Width = 48
	ti.SetValue(current)
	if field.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return Model{panel: panel, field: field, input: ti, onChange: onChange}
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Err returns the error from the most recent change callback, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlR:
			if m.field.Secret {
				if m.input.EchoMode == textinput.EchoPassword {
					m.input.EchoMode = textinput.EchoNormal
				} else {
					m.input.EchoMode = textinput.EchoPassword
				}
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		m.edited = true
		if m.onChange != nil {
			m.err = m.onChange(after)
		}
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.panel.Title))
	b.WriteString("\n")
	b.WriteString(nameStyle.Render(m.field.Name))
	b.WriteString("\n")
	b.WriteString(descStyle.Render(m.field.Description))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("not saved: " + m.err.Error()))
	case m.edited:
		b.WriteString(okStyle.Render("saved"))
	}

	hint := "enter/esc: close"
	if m.field.Secret {
		hint += " • ctrl+r: show/hide"
	}
	b.WriteString(hintStyle.Render(hint))

	return boxStyle.Render(b.String()) + "\n"
}

// Run shows the panel until the user closes it and returns the final value.
func Run(panel plugin.Panel, current string, onChange func(string) error) (string, error) {
	final, err := tea.NewProgram(New(panel, current, onChange)).Run()
	if err != nil {
		return current, err
	}
	m := final.(Model)
	return m.Value(), m.Err()
}
