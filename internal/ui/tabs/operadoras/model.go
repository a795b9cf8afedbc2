// Package operadoras provides the routed list and detail pages of the
// operadoras tab.
package operadoras

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/operadoras-tui/internal/app"
	"github.com/j-veylop/operadoras-tui/internal/models"
	listsvc "github.com/j-veylop/operadoras-tui/internal/services/operadoras"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the operadoras tab.
type keyMap struct {
	Search      key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	ClearSearch key.Binding
	Open        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Copy        key.Binding
}

// defaultKeyMap returns the default key bindings for the operadoras tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirmar busca"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancelar busca"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "limpar busca"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir operadora"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "próxima página"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "página anterior"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copiar CNPJ"),
		),
	}
}

// Model represents the operadoras tab state. Data lives in app.State; the
// model only holds widgets.
type Model struct {
	state    *app.State
	commands *app.Commands
	keys     keyMap

	table    table.Model
	search   textinput.Model
	viewport viewport.Model
	spinner  components.Loader

	// rowsKey identifies the page currently loaded into the table.
	rowsKey string
	// detailKey identifies the detail content currently in the viewport.
	detailKey string

	width  int
	height int
}

// New creates a new operadoras tab.
func New(state *app.State, commands *app.Commands) *Model {
	ti := textinput.New()
	ti.Placeholder = "razão social ou CNPJ"
	ti.Prompt = "Buscar: "
	ti.CharLimit = 120
	ti.SetValue(state.Search())

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(listsvc.PageSize+1),
	)
	t.SetStyles(styles.TableStyles())

	return &Model{
		state:    state,
		commands: commands,
		keys:     defaultKeyMap(),
		table:    t,
		search:   ti,
		viewport: viewport.New(0, 0),
		spinner:  components.NewLoader(),
	}
}

// columns sizes the list table for the given width.
func columns(width int) []table.Column {
	const cnpjWidth, ufWidth = 18, 4
	nameWidth := max(width-cnpjWidth-ufWidth-8, 20)
	return []table.Column{
		{Title: "CNPJ", Width: cnpjWidth},
		{Title: "Razão Social", Width: nameWidth},
		{Title: "UF", Width: ufWidth},
	}
}

// Init initializes the operadoras tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// CapturesInput reports whether the search box owns the keyboard.
func (m *Model) CapturesInput() bool {
	return m.onList() && m.search.Focused()
}

func (m *Model) onList() bool {
	return m.state.Location().Route.Name != app.RouteDetalhe
}

// Update handles messages for the operadoras tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.RouteChangedMsg:
		if msg.Location.Route.Name == app.RouteDetalhe {
			m.search.Blur()
			m.detailKey = ""
			m.viewport.GotoTop()
		} else {
			m.table.Focus()
		}

	case tea.KeyMsg:
		if m.onList() {
			cmds = append(cmds, m.updateList(msg))
		} else {
			cmds = append(cmds, m.updateDetail(msg))
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

		if m.search.Focused() {
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncRows()

	return m, tea.Batch(cmds...)
}

// updateList handles keys on the list page.
func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	list := m.state.List()

	if m.search.Focused() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.search.Blur()
			m.table.Focus()
			return m.commands.FetchOperadoras(1, m.search.Value())
		case key.Matches(msg, m.keys.Cancel):
			m.search.Blur()
			m.search.SetValue(m.state.Search())
			m.table.Focus()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}

	meta := list.Meta()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.table.Blur()
		m.search.CursorEnd()
		return m.search.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.state.Search() == "" {
			return nil
		}
		m.search.SetValue("")
		return m.commands.FetchOperadoras(1, "")

	case key.Matches(msg, m.keys.NextPage):
		switch {
		case meta == nil || list.Loading():
			return nil
		case meta.HasNext():
			return m.commands.FetchOperadoras(meta.Page+1, m.state.Search())
		}
		return m.commands.NotifyInfo("Esta é a última página")

	case key.Matches(msg, m.keys.PrevPage):
		switch {
		case meta == nil || list.Loading():
			return nil
		case meta.HasPrev():
			return m.commands.FetchOperadoras(meta.Page-1, m.state.Search())
		}
		return m.commands.NotifyInfo("Esta é a primeira página")

	case key.Matches(msg, m.keys.Open):
		if op, ok := m.selected(); ok {
			return m.commands.OpenOperadora(op.CNPJ)
		}
		return nil

	case key.Matches(msg, m.keys.Copy):
		if op, ok := m.selected(); ok {
			return m.commands.Copy(models.CleanCNPJ(op.CNPJ))
		}
		return m.commands.NotifyWarning("Nenhuma operadora selecionada")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

// updateDetail handles keys on the detail page.
func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	detail := m.state.Detail()

	var meta *models.Meta
	if detail.Despesas != nil {
		meta = &detail.Despesas.Meta
	}

	switch {
	case key.Matches(msg, m.keys.NextPage):
		if meta != nil && meta.HasNext() && !detail.Loading {
			return m.commands.FetchDespesas(detail.CNPJ, meta.Page+1)
		}
		return nil

	case key.Matches(msg, m.keys.PrevPage):
		if meta != nil && meta.HasPrev() && !detail.Loading {
			return m.commands.FetchDespesas(detail.CNPJ, meta.Page-1)
		}
		return nil

	case key.Matches(msg, m.keys.Copy):
		if detail.CNPJ != "" {
			return m.commands.Copy(models.CleanCNPJ(detail.CNPJ))
		}
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// selected returns the record under the table cursor.
func (m *Model) selected() (models.Operadora, bool) {
	records := m.state.List().Records()
	i := m.table.Cursor()
	if i < 0 || i >= len(records) {
		return models.Operadora{}, false
	}
	return records[i], true
}

// SetSize sets the available size for the operadoras tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.table.SetColumns(columns(width))
	m.table.SetHeight(min(listsvc.PageSize+1, max(height-6, 3)))
	m.search.Width = max(width-20, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-1, 1)
	m.detailKey = ""
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.onList() {
		return []key.Binding{m.keys.Search, m.keys.Open, m.keys.NextPage, m.keys.PrevPage, m.keys.ClearSearch, m.keys.Copy}
	}
	return []key.Binding{m.keys.NextPage, m.keys.PrevPage, m.keys.Copy}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Search, m.keys.Submit, m.keys.Cancel, m.keys.ClearSearch},
		{m.keys.Open, m.keys.NextPage, m.keys.PrevPage, m.keys.Copy},
	}
}
