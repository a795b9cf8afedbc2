// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/services/operadoras"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Duration  time.Duration
	Type      NotificationType
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// DetailState is the detail page's data for the operadora in the current
// location.
type DetailState struct {
	Operadora *models.Operadora
	Despesas  *models.PaginatedResponse[models.Despesa]
	Err       error
	CNPJ      string
	Loading   bool
}

// StatsState is the statistics tab's data.
type StatsState struct {
	UpdatedAt time.Time
	Stats     *models.StatsResponse
	Err       error
	Loading   bool
}

// ExportState tracks the export started from the TUI.
type ExportState struct {
	LastRun  *models.ExportRun
	Err      error
	Progress services.ExportProgressEvent
	Running  bool
}

// State is the shared application state read by every tab. All access goes
// through its methods.
type State struct {
	mu sync.RWMutex

	list     *operadoras.List
	location Location
	search   string

	detail DetailState
	stats  StatsState
	export ExportState

	notifications   []Notification
	notificationSeq int
}

// NewState creates the shared state around the list view-state. A nil list
// gets an empty one with no fetcher, which is only useful in tests.
func NewState(list *operadoras.List) *State {
	if list == nil {
		list = operadoras.New(nil)
	}
	return &State{
		list:          list,
		location:      DefaultRouter().Resolve("/"),
		notifications: make([]Notification, 0),
	}
}

// List returns the operadoras list view-state.
func (s *State) List() *operadoras.List {
	return s.list
}

// Location returns the current route location.
func (s *State) Location() Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location
}

// SetLocation changes the current route location.
func (s *State) SetLocation(loc Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
}

// Search returns the search term of the list page.
func (s *State) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SetSearch stores the search term of the list page.
func (s *State) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// BeginDetail resets the detail state for cnpj and marks it loading.
func (s *State) BeginDetail(cnpj string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = DetailState{CNPJ: cnpj, Loading: true}
}

// MarkDetailLoading flags the current detail as loading, unless cnpj is no
// longer the operadora being shown.
func (s *State) MarkDetailLoading(cnpj string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail.CNPJ == cnpj {
		s.detail.Loading = true
	}
}

// SetDetail stores a loaded detail. It returns false, leaving the state
// untouched, when cnpj is no longer the operadora being shown.
func (s *State) SetDetail(cnpj string, detail *services.Detail, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail.CNPJ != cnpj {
		return false
	}
	s.detail.Loading = false
	s.detail.Err = err
	if err == nil && detail != nil {
		s.detail.Operadora = detail.Operadora
		s.detail.Despesas = detail.Despesas
	}
	return true
}

// SetDespesasPage replaces the expense page of the current detail. Like
// SetDetail it ignores pages for another operadora.
func (s *State) SetDespesasPage(cnpj string, page *models.PaginatedResponse[models.Despesa], err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail.CNPJ != cnpj {
		return false
	}
	s.detail.Loading = false
	if err != nil {
		s.detail.Err = err
		return true
	}
	s.detail.Err = nil
	s.detail.Despesas = page
	return true
}

// Detail returns a copy of the detail state.
func (s *State) Detail() DetailState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

// SetStatsLoading marks statistics as loading.
func (s *State) SetStatsLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Loading = true
}

// SetStats stores loaded statistics. On error the previous statistics are
// kept.
func (s *State) SetStats(stats *models.StatsResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Loading = false
	s.stats.Err = err
	if err == nil {
		s.stats.Stats = stats
		s.stats.UpdatedAt = time.Now()
	}
}

// Stats returns a copy of the statistics state.
func (s *State) Stats() StatsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// StartExport marks an export as running. It returns false if one already is.
func (s *State) StartExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.export.Running {
		return false
	}
	s.export.Running = true
	s.export.Err = nil
	s.export.Progress = services.ExportProgressEvent{}
	return true
}

// SetExportProgress records export progress.
func (s *State) SetExportProgress(p services.ExportProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.export.Progress = p
}

// FinishExport records the outcome of an export.
func (s *State) FinishExport(run *models.ExportRun, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.export.Running = false
	s.export.Err = err
	if err == nil {
		s.export.LastRun = run
	}
}

// Export returns a copy of the export state.
func (s *State) Export() ExportState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.export
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the most recent notifications
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
