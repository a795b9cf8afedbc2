// Package services provides service orchestration for the TUI and the CLI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/operadoras-tui/internal/api"
	"github.com/j-veylop/operadoras-tui/internal/config"
	"github.com/j-veylop/operadoras-tui/internal/db"
	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/services/operadoras"
)

type (
	// ExportProgressEvent is emitted while an export is running.
	ExportProgressEvent struct {
		Stage string
		Done  int
		Total int
	}

	// ExportFinishedEvent is emitted when an export completes.
	ExportFinishedEvent struct {
		Run *models.ExportRun
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ExportProgressEvent) isServiceEvent() {}
func (ExportFinishedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Export stages reported in ExportProgressEvent.
const (
	StageOperadoras = "operadoras"
	StageDespesas   = "despesas"
)

const (
	// exportPageSize is the page size used when paging through the whole API.
	exportPageSize = 100
	// defaultExportWorkers bounds concurrent requests during an export.
	defaultExportWorkers = 4
)

// notify is swapped in tests.
var notify = func(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Detail is everything the detail page shows for one operadora.
type Detail struct {
	Operadora *models.Operadora                        `json:"operadora"`
	Despesas  *models.PaginatedResponse[models.Despesa] `json:"despesas"`
}

// ExportOptions controls an export run.
type ExportOptions struct {
	// Path is the SQLite file; empty means the configured DATABASE_PATH.
	Path string
	// Workers bounds concurrent API requests; zero means 4.
	Workers int
	// Despesas also exports every operadora's expense history.
	Despesas bool
	// Notify sends a desktop notification when the export finishes.
	Notify bool
}

// Manager owns the API client and the list view-state, and routes service
// events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	client      *api.Client
	list        *operadoras.List
	subscribers []chan<- ServiceEvent
	exporting   atomic.Bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	client, err := api.New(cfg.APIURL, api.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	return &Manager{
		cfg:    cfg,
		client: client,
		list:   operadoras.New(client),
	}, nil
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Client returns the API client.
func (m *Manager) Client() *api.Client {
	return m.client
}

// List returns the operadoras list view-state.
func (m *Manager) List() *operadoras.List {
	return m.list
}

// LoadDetail fetches an operadora and the first page of its expenses in
// parallel.
func (m *Manager) LoadDetail(ctx context.Context, cnpj string) (*Detail, error) {
	if !models.ValidCNPJ(models.CleanCNPJ(cnpj)) {
		return nil, api.ErrInvalidCNPJ
	}

	var detail Detail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		op, err := m.client.GetOperadora(gctx, cnpj)
		if err != nil {
			return fmt.Errorf("failed to load operadora: %w", err)
		}
		detail.Operadora = op
		return nil
	})

	g.Go(func() error {
		page, err := m.client.ListDespesas(gctx, cnpj, 1, api.DefaultDespesasLimit)
		if err != nil {
			return fmt.Errorf("failed to load despesas: %w", err)
		}
		detail.Despesas = page
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("failed to load operadora detail", "cnpj", cnpj, "error", err)
		return nil, err
	}
	return &detail, nil
}

// LoadDespesas fetches one page of an operadora's expenses.
func (m *Manager) LoadDespesas(ctx context.Context, cnpj string, page int) (*models.PaginatedResponse[models.Despesa], error) {
	resp, err := m.client.ListDespesas(ctx, cnpj, page, api.DefaultDespesasLimit)
	if err != nil {
		logger.Error("failed to load despesas", "cnpj", cnpj, "page", page, "error", err)
		return nil, err
	}
	return resp, nil
}

// Stats fetches the aggregate statistics.
func (m *Manager) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := m.client.GetEstatisticas(ctx)
	if err != nil {
		logger.Error("failed to load estatisticas", "error", err)
		return nil, err
	}
	return stats, nil
}

// ErrExportRunning is returned when an export is started while another one
// is still in progress.
var ErrExportRunning = errors.New("an export is already running")

// Export pages through every operadora, and optionally every expense page,
// and stores them into a SQLite snapshot.
func (m *Manager) Export(ctx context.Context, opts ExportOptions) (*models.ExportRun, error) {
	if !m.exporting.CompareAndSwap(false, true) {
		return nil, ErrExportRunning
	}
	defer m.exporting.Store(false)

	if opts.Path == "" {
		opts.Path = m.cfg.DatabasePath
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultExportWorkers
	}

	run, err := m.export(ctx, opts)
	if err != nil {
		logger.Error("export failed", "path", opts.Path, "error", err)
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		if opts.Notify {
			m.sendNotification("Export failed", err.Error())
		}
		return nil, err
	}

	logger.Info("export finished", "path", opts.Path, "operadoras", run.Operadoras,
		"despesas", run.Despesas, "duration", run.Duration())
	m.broadcast(ExportFinishedEvent{Run: run})
	if opts.Notify {
		m.sendNotification("Export finished",
			fmt.Sprintf("%d operadoras, %d despesas saved to %s", run.Operadoras, run.Despesas, opts.Path))
	}
	return run, nil
}

func (m *Manager) export(ctx context.Context, opts ExportOptions) (*models.ExportRun, error) {
	database, err := db.New(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warn("failed to close snapshot database", "error", err)
		}
	}()

	run := &models.ExportRun{
		APIURL:    m.client.BaseURL(),
		StartedAt: time.Now(),
	}

	cnpjs, err := m.exportOperadoras(ctx, database, opts.Workers, run)
	if err != nil {
		return nil, err
	}

	if opts.Despesas {
		if err := m.exportDespesas(ctx, database, cnpjs, opts.Workers, run); err != nil {
			return nil, err
		}
	}

	// Totals are informational; a failing stats endpoint does not fail the export.
	if stats, err := m.client.GetEstatisticas(ctx); err != nil {
		logger.Warn("export could not fetch estatisticas", "error", err)
	} else {
		total, media := stats.TotalDespesas, stats.MediaDespesas
		run.TotalDespesas = &total
		run.MediaDespesas = &media
	}

	run.FinishedAt = time.Now()
	if err := database.InsertExport(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// exportOperadoras stores every list page and returns the cnpjs seen.
func (m *Manager) exportOperadoras(ctx context.Context, database *db.DB, workers int, run *models.ExportRun) ([]string, error) {
	first, err := m.client.ListOperadoras(ctx, 1, exportPageSize, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list operadoras: %w", err)
	}

	totalPages := max(first.Meta.TotalPages, 1)
	pages := make([][]models.Operadora, totalPages)
	pages[0] = first.Data

	var done atomic.Int64
	done.Add(1)
	m.broadcast(ExportProgressEvent{Stage: StageOperadoras, Done: 1, Total: totalPages})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for p := 2; p <= totalPages; p++ {
		g.Go(func() error {
			resp, err := m.client.ListOperadoras(gctx, p, exportPageSize, "")
			if err != nil {
				return fmt.Errorf("failed to list operadoras page %d: %w", p, err)
			}
			pages[p-1] = resp.Data
			m.broadcast(ExportProgressEvent{Stage: StageOperadoras, Done: int(done.Add(1)), Total: totalPages})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cnpjs []string
	for _, page := range pages {
		n, err := database.UpsertOperadoras(ctx, page)
		if err != nil {
			return nil, err
		}
		run.Operadoras += n
		for _, op := range page {
			if c := models.CleanCNPJ(op.CNPJ); models.ValidCNPJ(c) {
				cnpjs = append(cnpjs, c)
			}
		}
	}
	return cnpjs, nil
}

// exportDespesas stores the full expense history of each cnpj.
func (m *Manager) exportDespesas(ctx context.Context, database *db.DB, cnpjs []string, workers int, run *models.ExportRun) error {
	var (
		done  atomic.Int64
		count atomic.Int64
	)
	total := len(cnpjs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, cnpj := range cnpjs {
		g.Go(func() error {
			despesas, err := m.allDespesas(gctx, cnpj)
			if err != nil {
				return err
			}
			n, err := database.UpsertDespesas(gctx, cnpj, despesas)
			if err != nil {
				return err
			}
			count.Add(int64(n))
			m.broadcast(ExportProgressEvent{Stage: StageDespesas, Done: int(done.Add(1)), Total: total})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	run.Despesas = int(count.Load())
	return nil
}

func (m *Manager) allDespesas(ctx context.Context, cnpj string) ([]models.Despesa, error) {
	var all []models.Despesa
	for page := 1; ; page++ {
		resp, err := m.client.ListDespesas(ctx, cnpj, page, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list despesas of %s: %w", cnpj, err)
		}
		all = append(all, resp.Data...)
		if !resp.Meta.HasNext() || len(resp.Data) == 0 {
			return all, nil
		}
	}
}

func (m *Manager) sendNotification(title, body string) {
	if err := notify(title, body); err != nil {
		logger.Warn("failed to send desktop notification", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes all subscriber channels.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	return nil
}
