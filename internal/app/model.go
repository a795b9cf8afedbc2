// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/operadoras-tui/internal/api"
	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOperadoras hosts the routed list and detail pages.
	TabOperadoras TabID = iota
	// TabEstatisticas shows the aggregate statistics.
	TabEstatisticas
	// TabInfo shows configuration and build information.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabOperadoras:
		return "Operadoras"
	case TabEstatisticas:
		return "Estatísticas"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// InputCapturer is implemented by tabs that sometimes own the keyboard, such
// as while a text input is focused. Global keys other than ctrl+c are not
// handled while CapturesInput returns true.
type InputCapturer interface {
	CapturesInput() bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "operadoras")),
		Tab2:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "estatísticas")),
		Tab3:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "info")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.NextTab, k.PrevTab, k.Back},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Location    lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(styles.ColorTextMuted)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(styles.ColorPrimary).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(styles.ColorTextMuted).Padding(0, 2)
	s.Location = lipgloss.NewStyle().Foreground(styles.ColorTextDim).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(styles.ColorSuccess).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(styles.ColorError).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(styles.ColorWarning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(styles.ColorInfo).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(styles.ColorPrimary)
	s.Subtle = lipgloss.NewStyle().Foreground(styles.ColorTextMuted)
	s.Highlight = lipgloss.NewStyle().Foreground(styles.ColorSecondary)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	commands *Commands
	router   *Router
	keymap   KeyMap
	styles   Styles

	spinner spinner.Model

	width  int
	height int

	showHelp bool
	ready    bool

	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil in tests;
// no network commands are issued then.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	var state *State
	if mgr != nil {
		state = NewState(mgr.List())
	} else {
		state = NewState(nil)
	}

	router := DefaultRouter()
	return &Model{
		activeTab: TabOperadoras,
		tabNames:  []string{TabOperadoras.String(), TabEstatisticas.String(), TabInfo.String()},
		tabs:      make([]Tab, 3),
		state:     state,
		services:  mgr,
		commands:  NewCommands(mgr, router),
		router:    router,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetCommands returns the commands helper.
func (m *Model) GetCommands() *Commands {
	return m.commands
}

// GetRouter returns the router.
func (m *Model) GetRouter() *Router {
	return m.router
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
		navigateCmd("/"),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, m.commands.FetchStats())
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateTabSizes()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case NavigateMsg:
		cmds = append(cmds, m.handleNavigate(msg)...)
	case FetchOperadorasMsg:
		cmds = append(cmds, m.fetchOperadoras(msg.Page, msg.Search))
	case OperadorasLoadedMsg:
		cmds = append(cmds, m.handleOperadorasLoaded(msg))
	case DetailLoadedMsg:
		if m.state.SetDetail(msg.CNPJ, msg.Detail, msg.Err) && msg.Err != nil {
			cmds = append(cmds, notifyErrorCmd(describeError("Falha ao carregar operadora", msg.Err)))
		}
	case FetchDespesasMsg:
		if m.services != nil {
			m.state.MarkDetailLoading(msg.CNPJ)
			cmds = append(cmds, loadDespesasCmd(m.services, msg.CNPJ, msg.Page))
		}
	case DespesasLoadedMsg:
		if m.state.SetDespesasPage(msg.CNPJ, msg.Response, msg.Err) && msg.Err != nil {
			cmds = append(cmds, notifyErrorCmd(describeError("Falha ao carregar despesas", msg.Err)))
		}
	case FetchStatsMsg:
		if m.services != nil {
			m.state.SetStatsLoading()
			cmds = append(cmds, loadStatsCmd(m.services))
		}
	case StatsLoadedMsg:
		m.state.SetStats(msg.Stats, msg.Err)
		if msg.Err != nil {
			cmds = append(cmds, notifyErrorCmd(describeError("Falha ao carregar estatísticas", msg.Err)))
		}
	case ExportMsg:
		cmds = append(cmds, m.handleExport(msg))
	case ExportResultMsg:
		m.state.FinishExport(msg.Run, msg.Err)
		m.state.ClearLoadingNotification()
		if msg.Err != nil {
			cmds = append(cmds, notifyErrorCmd(describeError("Falha na exportação", msg.Err)))
		} else if msg.Run != nil {
			cmds = append(cmds, notifySuccessCmd(fmt.Sprintf("Exportadas %d operadoras e %d despesas",
				msg.Run.Operadoras, msg.Run.Despesas)))
		}
	case CopyToClipboardMsg:
		cmds = append(cmds, copyToClipboardCmd(msg.Text))
	case ClipboardResultMsg:
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(describeError("Falha ao copiar", msg.Error)))
		} else {
			cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("Copiado: %s", msg.Text)))
		}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	}
	return cmds
}

// handleNavigate resolves the path, switches to the operadoras tab and
// starts the loads the new page needs.
func (m *Model) handleNavigate(msg NavigateMsg) []tea.Cmd {
	if _, _, ok := m.router.Match(msg.Path); !ok {
		logger.Debug("unknown route, falling back to list", "path", msg.Path)
	}
	loc := m.router.Resolve(msg.Path)
	m.state.SetLocation(loc)
	m.switchTab(TabOperadoras)

	cmds := []tea.Cmd{func() tea.Msg { return RouteChangedMsg{Location: loc} }}

	switch loc.Route.Name {
	case RouteLista:
		page := 1
		if meta := m.state.List().Meta(); meta != nil {
			page = meta.Page
		}
		cmds = append(cmds, m.fetchOperadoras(page, m.state.Search()))
	case RouteDetalhe:
		cnpj := loc.Params["cnpj"]
		m.state.BeginDetail(cnpj)
		if m.services != nil {
			cmds = append(cmds, loadDetailCmd(m.services, cnpj))
		}
	}
	return cmds
}

// fetchOperadoras issues a list request. The token is taken here, on the
// update loop, so that request order matches the order of user actions.
func (m *Model) fetchOperadoras(page int, search string) tea.Cmd {
	if m.services == nil {
		return nil
	}
	page = max(page, 1)
	m.state.SetSearch(search)
	list := m.state.List()
	req := list.Begin(page, search)
	logger.Debug("listing operadoras", "page", page, "search", search, "token", req.Token)
	return fetchOperadorasCmd(list, req)
}

func (m *Model) handleOperadorasLoaded(msg OperadorasLoadedMsg) tea.Cmd {
	res := m.state.List().Settle(msg.Request, msg.Response, msg.Err)
	if res.Stale || res.Err == nil {
		return nil
	}
	return notifyErrorCmd(describeError("Falha ao carregar operadoras", res.Err))
}

func (m *Model) handleExport(msg ExportMsg) tea.Cmd {
	if m.services == nil {
		return nil
	}
	if !m.state.StartExport() {
		return m.commands.NotifyWarning("Uma exportação já está em andamento")
	}
	m.state.SetLoadingNotification(fmt.Sprintf("Exportando para %s...", m.services.Config().DatabasePath))
	return exportCmd(m.services, msg.Despesas)
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.ExportProgressEvent:
		// Progress can trail the result; a finished export keeps no toast.
		if m.state.Export().Running {
			m.state.SetExportProgress(e)
			m.state.SetLoadingNotification(fmt.Sprintf("Exportando %s: %d/%d", e.Stage, e.Done, e.Total))
		}
	case services.ErrorEvent:
		// Export failures are reported through ExportResultMsg.
		if e.Service != "export" {
			return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
		}
	}
	return nil
}

func (m *Model) refreshCmd() tea.Cmd {
	switch m.activeTab {
	case TabOperadoras:
		loc := m.state.Location()
		if loc.Route.Name == RouteDetalhe {
			return m.commands.Navigate(loc.Path)
		}
		page := 1
		if meta := m.state.List().Meta(); meta != nil {
			page = meta.Page
		}
		return m.fetchOperadoras(page, m.state.Search())
	case TabEstatisticas:
		return m.commands.FetchStats()
	}
	return nil
}

func (m *Model) switchTab(tab TabID) {
	if int(tab) < 0 || int(tab) >= len(m.tabs) {
		return
	}
	m.activeTab = tab
	m.updateTabSizes()
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-5)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) activeTabCapturesInput() bool {
	if int(m.activeTab) >= len(m.tabs) || m.tabs[m.activeTab] == nil {
		return false
	}
	c, ok := m.tabs[m.activeTab].(InputCapturer)
	return ok && c.CapturesInput()
}

// handleKeyMsg handles global keys. handled reports whether the key must not
// reach the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return tea.Quit, true
	}
	if m.activeTabCapturesInput() {
		return nil, false
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Back) {
			m.showHelp = false
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOperadoras)
		return nil, true

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabEstatisticas)
		return nil, true

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabInfo)
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))
		return nil, true

	case key.Matches(msg, m.keymap.Refresh):
		return m.refreshCmd(), true

	case key.Matches(msg, m.keymap.Back):
		if m.activeTab == TabOperadoras && m.state.Location().Route.Name == RouteDetalhe {
			return m.commands.Back(), true
		}
	}

	return nil, false
}

// describeError turns API errors into short user-facing text.
func describeError(what string, err error) string {
	var se *api.StatusError
	switch {
	case errors.Is(err, api.ErrNotFound):
		return what + ": não encontrada"
	case errors.Is(err, api.ErrInvalidCNPJ):
		return what + ": CNPJ inválido"
	case errors.As(err, &se) && se.Message != "":
		return fmt.Sprintf("%s: %s (HTTP %d)", what, se.Message, se.StatusCode)
	case errors.Is(err, services.ErrExportRunning):
		return what + ": exportação em andamento"
	}
	if what == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", what, err)
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Carregando...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return m.overlayToasts(mainView, toasts)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-lipgloss.Width(overlay))/2, 0)
	overlayWidth := lipgloss.Width(overlay)

	for len(mainLines) < y+len(overlayLines) {
		mainLines = append(mainLines, "")
	}

	for i, overlayLine := range overlayLines {
		row := y + i
		if row >= len(mainLines) {
			break
		}

		line := mainLines[row]
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+overlayWidth, "")
		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		mainLines[row] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}
	tabs = append(tabs, m.styles.Location.Render(m.state.Location().Path))

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style, prefix = m.styles.NotificationSuccess, "[OK]"
		case NotificationError:
			style, prefix = m.styles.NotificationError, "[ERR]"
		case NotificationWarning:
			style, prefix = m.styles.NotificationWarning, "[WARN]"
		case NotificationInfo:
			style, prefix = m.styles.NotificationInfo, "[INFO]"
		case NotificationLoading:
			style, prefix = m.styles.NotificationInfo, m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	startX := max(m.width-lipgloss.Width(toastStack)-2, 0)
	const startY = 2

	for len(mainLines) < startY+len(toastLines) {
		mainLines = append(mainLines, "")
	}

	for i, toastLine := range toastLines {
		row := startY + i
		if row >= len(mainLines) {
			break
		}

		line := mainLines[row]
		if w := lipgloss.Width(line); w < startX {
			mainLines[row] = line + strings.Repeat(" ", startX-w) + toastLine
		} else {
			mainLines[row] = ansi.Truncate(line, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Atalhos"), "")

	lines = append(lines, m.styles.Highlight.Render("Navegação"))
	lines = append(lines, "  1-3        Trocar de aba")
	lines = append(lines, "  Tab        Próxima aba")
	lines = append(lines, "  Shift+Tab  Aba anterior")
	lines = append(lines, "  Esc        Voltar para a lista")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Ações"))
	lines = append(lines, "  r          Recarregar")
	lines = append(lines, "  ?          Ajuda")
	lines = append(lines, "  q/Ctrl+C   Sair")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		if tabHelp := m.tabs[m.activeTab].ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(m.tabNames[m.activeTab]))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("? ou Esc para fechar"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Aba %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("Aba não configurada."),
	)
	return m.styles.Content.Render(content)
}
