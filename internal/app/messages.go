package app

import (
	"time"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/services/operadoras"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// NavigateMsg asks the router to move to Path. Unknown paths land on the
// list page.
type NavigateMsg struct {
	Path string
}

// RouteChangedMsg is sent to the tabs after a navigation resolved.
type RouteChangedMsg struct {
	Location Location
}

// FetchOperadorasMsg asks for one page of the operadoras list.
type FetchOperadorasMsg struct {
	Search string
	Page   int
}

// OperadorasLoadedMsg carries the response of a list request. The root
// model settles it into the list state before tabs see it.
type OperadorasLoadedMsg struct {
	Response *models.PaginatedResponse[models.Operadora]
	Err      error
	Request  operadoras.Request
}

// DetailLoadedMsg carries an operadora and its first expense page.
type DetailLoadedMsg struct {
	Detail *services.Detail
	Err    error
	CNPJ   string
}

// FetchDespesasMsg asks for another expense page of the current operadora.
type FetchDespesasMsg struct {
	CNPJ string
	Page int
}

// DespesasLoadedMsg carries one expense page.
type DespesasLoadedMsg struct {
	Response *models.PaginatedResponse[models.Despesa]
	Err      error
	CNPJ     string
	Page     int
}

// FetchStatsMsg asks for the aggregate statistics.
type FetchStatsMsg struct{}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats *models.StatsResponse
	Err   error
}

// ExportMsg requests a snapshot export into the configured database.
type ExportMsg struct {
	Despesas bool
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Run *models.ExportRun
	Err error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Duration time.Duration
	Type     NotificationType
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
}

// ClipboardResultMsg contains the result of a clipboard operation.
type ClipboardResultMsg struct {
	Error error
	Text  string
}
