package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/services/operadoras"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// navigateCmd returns a command that requests navigation to path.
func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// fetchOperadorasCmd performs the network call of an issued list request.
// Settling happens on the update loop when OperadorasLoadedMsg arrives.
func fetchOperadorasCmd(list *operadoras.List, req operadoras.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := list.Fetch(context.Background(), req)
		return OperadorasLoadedMsg{Request: req, Response: resp, Err: err}
	}
}

// loadDetailCmd returns a command that loads an operadora and its expenses.
func loadDetailCmd(mgr *services.Manager, cnpj string) tea.Cmd {
	return func() tea.Msg {
		detail, err := mgr.LoadDetail(context.Background(), cnpj)
		return DetailLoadedMsg{CNPJ: cnpj, Detail: detail, Err: err}
	}
}

// loadDespesasCmd returns a command that loads one expense page.
func loadDespesasCmd(mgr *services.Manager, cnpj string, page int) tea.Cmd {
	return func() tea.Msg {
		resp, err := mgr.LoadDespesas(context.Background(), cnpj, page)
		return DespesasLoadedMsg{CNPJ: cnpj, Page: page, Response: resp, Err: err}
	}
}

// loadStatsCmd returns a command that loads statistics.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		stats, err := mgr.Stats(context.Background())
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

// exportCmd returns a command that writes a snapshot export.
func exportCmd(mgr *services.Manager, despesas bool) tea.Cmd {
	return func() tea.Msg {
		run, err := mgr.Export(context.Background(), services.ExportOptions{Despesas: despesas})
		return ExportResultMsg{Run: run, Err: err}
	}
}

// copyToClipboardCmd returns a command that copies text to the clipboard.
func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardResultMsg{Text: text, Error: writeClipboard(text)}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(typ NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: typ, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Commands provides tabs with commands that need the service manager or the
// router.
type Commands struct {
	manager *services.Manager
	router  *Router
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager, router *Router) *Commands {
	if router == nil {
		router = DefaultRouter()
	}
	return &Commands{manager: mgr, router: router}
}

// Navigate returns a command that navigates to path.
func (c *Commands) Navigate(path string) tea.Cmd {
	return navigateCmd(path)
}

// OpenOperadora navigates to the detail page of cnpj.
func (c *Commands) OpenOperadora(cnpj string) tea.Cmd {
	return navigateCmd(c.router.DetailPath(cnpj))
}

// Back navigates to the list page.
func (c *Commands) Back() tea.Cmd {
	path, err := c.router.Path(RouteLista, nil)
	if err != nil {
		path = "/"
	}
	return navigateCmd(path)
}

// FetchOperadoras asks the root model to load a list page.
func (c *Commands) FetchOperadoras(page int, search string) tea.Cmd {
	return func() tea.Msg {
		return FetchOperadorasMsg{Page: page, Search: search}
	}
}

// FetchDespesas asks the root model to load an expense page.
func (c *Commands) FetchDespesas(cnpj string, page int) tea.Cmd {
	return func() tea.Msg {
		return FetchDespesasMsg{CNPJ: cnpj, Page: page}
	}
}

// FetchStats asks the root model to reload statistics.
func (c *Commands) FetchStats() tea.Cmd {
	return func() tea.Msg {
		return FetchStatsMsg{}
	}
}

// Export asks the root model to start a snapshot export.
func (c *Commands) Export(despesas bool) tea.Cmd {
	return func() tea.Msg {
		return ExportMsg{Despesas: despesas}
	}
}

// Copy asks the root model to copy text to the clipboard.
func (c *Commands) Copy(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyToClipboardMsg{Text: text}
	}
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}
