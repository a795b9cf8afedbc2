// Package info provides the info tab: configuration, build information and
// snapshot exports.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/operadoras-tui/internal/app"
	"github.com/j-veylop/operadoras-tui/internal/config"
)

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Export     key.Binding
	ExportFull key.Binding
	Copy       key.Binding
	Up         key.Binding
	Down       key.Binding
}

// defaultKeyMap returns the default key bindings for the info tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exportar operadoras"),
		),
		ExportFull: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "exportar com despesas"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copiar caminho do banco"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	config   *config.Config
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new info model. cfg may be nil.
func New(state *app.State, commands *app.Commands, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		commands: commands,
		config:   cfg,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Export):
		return m, m.commands.Export(false)
	case key.Matches(keyMsg, m.keys.ExportFull):
		return m, m.commands.Export(true)
	case key.Matches(keyMsg, m.keys.Copy):
		if m.config != nil && m.config.DatabasePath != "" {
			return m, m.commands.Copy(m.config.DatabasePath)
		}
		return m, m.commands.NotifyWarning("Nenhum arquivo de exportação configurado")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(keyMsg)
	return m, cmd
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Export, m.keys.ExportFull, m.keys.Copy}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Export, m.keys.ExportFull, m.keys.Copy},
		{m.keys.Up, m.keys.Down},
	}
}
