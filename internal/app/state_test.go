package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState(nil)
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.List() == nil {
		t.Error("List should never be nil")
	}
	if loc := s.Location(); loc.Route.Name != RouteLista || loc.Path != "/" {
		t.Errorf("initial location = %+v, want lista at /", loc)
	}
	if len(s.GetNotifications()) != 0 {
		t.Error("Notifications should be empty")
	}
}

func TestState_LocationAndSearch(t *testing.T) {
	s := NewState(nil)

	loc := DefaultRouter().Resolve("/operadora/123")
	s.SetLocation(loc)
	if got := s.Location(); got.Route.Name != RouteDetalhe || got.Params["cnpj"] != "123" {
		t.Errorf("Location() = %+v", got)
	}

	s.SetSearch("acme")
	if s.Search() != "acme" {
		t.Errorf("Search() = %q, want acme", s.Search())
	}
}

func TestState_Detail(t *testing.T) {
	s := NewState(nil)
	s.BeginDetail("111")

	if d := s.Detail(); !d.Loading || d.CNPJ != "111" {
		t.Fatalf("BeginDetail state = %+v", d)
	}

	detail := &services.Detail{
		Operadora: &models.Operadora{CNPJ: "111", RazaoSocial: "Acme"},
		Despesas:  &models.PaginatedResponse[models.Despesa]{Data: []models.Despesa{{Ano: 2024, Trimestre: 1}}},
	}

	// A response for another operadora is ignored.
	if s.SetDetail("222", detail, nil) {
		t.Error("SetDetail for another cnpj should be ignored")
	}
	if s.Detail().Operadora != nil {
		t.Error("ignored detail must not be stored")
	}

	if !s.SetDetail("111", detail, nil) {
		t.Fatal("SetDetail for the current cnpj should apply")
	}
	d := s.Detail()
	if d.Loading || d.Err != nil || d.Operadora.RazaoSocial != "Acme" || len(d.Despesas.Data) != 1 {
		t.Errorf("Detail() = %+v", d)
	}
}

func TestState_DetailError(t *testing.T) {
	s := NewState(nil)
	s.BeginDetail("111")

	boom := errors.New("boom")
	s.SetDetail("111", nil, boom)
	if d := s.Detail(); d.Loading || !errors.Is(d.Err, boom) || d.Operadora != nil {
		t.Errorf("Detail() = %+v", d)
	}
}

func TestState_DespesasPage(t *testing.T) {
	s := NewState(nil)
	s.BeginDetail("111")
	s.SetDetail("111", &services.Detail{Operadora: &models.Operadora{CNPJ: "111"}}, nil)

	page := &models.PaginatedResponse[models.Despesa]{Meta: models.Meta{Page: 2}}
	if !s.SetDespesasPage("111", page, nil) {
		t.Fatal("SetDespesasPage should apply")
	}
	if s.Detail().Despesas.Meta.Page != 2 {
		t.Error("despesas page not replaced")
	}

	// Failure keeps the page on screen.
	s.SetDespesasPage("111", nil, errors.New("boom"))
	d := s.Detail()
	if d.Err == nil || d.Despesas == nil || d.Despesas.Meta.Page != 2 {
		t.Errorf("after failure Detail() = %+v", d)
	}

	if s.SetDespesasPage("999", page, nil) {
		t.Error("SetDespesasPage for another cnpj should be ignored")
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState(nil)

	s.SetStatsLoading()
	if !s.Stats().Loading {
		t.Error("Stats should be loading")
	}

	stats := &models.StatsResponse{TotalDespesas: 10}
	s.SetStats(stats, nil)
	got := s.Stats()
	if got.Loading || got.Stats != stats || got.UpdatedAt.IsZero() {
		t.Errorf("Stats() = %+v", got)
	}

	s.SetStats(nil, errors.New("down"))
	got = s.Stats()
	if got.Err == nil || got.Stats != stats {
		t.Errorf("failure should keep previous stats, got %+v", got)
	}
}

func TestState_Export(t *testing.T) {
	s := NewState(nil)

	if !s.StartExport() {
		t.Fatal("StartExport should succeed")
	}
	if s.StartExport() {
		t.Error("second StartExport should be refused while running")
	}

	s.SetExportProgress(services.ExportProgressEvent{Stage: services.StageOperadoras, Done: 1, Total: 3})
	if p := s.Export().Progress; p.Done != 1 || p.Total != 3 {
		t.Errorf("Progress = %+v", p)
	}

	run := &models.ExportRun{Operadoras: 3}
	s.FinishExport(run, nil)
	e := s.Export()
	if e.Running || e.LastRun != run || e.Err != nil {
		t.Errorf("Export() = %+v", e)
	}

	s.StartExport()
	s.FinishExport(nil, errors.New("disk full"))
	e = s.Export()
	if e.Err == nil || e.LastRun != run {
		t.Errorf("failed export should keep the last run, got %+v", e)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState(nil)

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState(nil)
	for i := 0; i < maxNotifications+5; i++ {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("kept %d notifications, want %d", got, maxNotifications)
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState(nil)

	s.notifications = append(s.notifications,
		Notification{ID: "expired", CreatedAt: time.Now().Add(-2 * time.Minute), Duration: time.Minute},
		Notification{ID: "active", CreatedAt: time.Now(), Duration: time.Minute},
		Notification{ID: "sticky", CreatedAt: time.Now().Add(-time.Hour)},
	)

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifs))
	}
	if notifs[0].ID != "active" || notifs[1].ID != "sticky" {
		t.Errorf("unexpected notifications %+v", notifs)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState(nil)

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	if notifs[0].Type != NotificationLoading || notifs[0].Message != "Still loading..." {
		t.Errorf("loading notification = %+v", notifs[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := map[NotificationType]string{
		NotificationSuccess:  "success",
		NotificationError:    "error",
		NotificationWarning:  "warning",
		NotificationInfo:     "info",
		NotificationLoading:  "loading",
		NotificationType(99): "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
