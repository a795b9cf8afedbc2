// Package stats provides the aggregate statistics tab.
package stats

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/operadoras-tui/internal/app"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
)

// topUFs is the number of federative units charted.
const topUFs = 10

type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "rolar"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "rolar"),
		),
	}
}

// Model represents the statistics tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	spinner  components.Loader
	width    int
	height   int
}

// New creates a new statistics tab.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		spinner:  components.NewLoader(),
	}
}

// Init initializes the statistics tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the statistics tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// SetSize sets the available size for the statistics tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
