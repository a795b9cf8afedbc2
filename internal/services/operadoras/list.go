// Package operadoras holds the view-state of the paginated operadoras list.
package operadoras

import (
	"context"
	"errors"
	"sync"

	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/models"
)

// PageSize is the fixed number of records requested per list page.
const PageSize = 10

// ErrStale is returned in Result.Err when a response arrived after a newer
// request had already been issued.
var ErrStale = errors.New("stale response discarded")

// Fetcher is the single API call the list needs. *api.Client satisfies it.
type Fetcher interface {
	ListOperadoras(ctx context.Context, page, limit int, search string) (*models.PaginatedResponse[models.Operadora], error)
}

// Request identifies one issued list request.
type Request struct {
	Token  uint64
	Page   int
	Search string
}

// Result is the outcome of settling a request.
type Result struct {
	Request Request
	Err     error
	// Stale is set when the response was discarded because a newer request
	// was issued after it.
	Stale bool
}

// OK reports whether the response was applied.
func (r Result) OK() bool {
	return r.Err == nil && !r.Stale
}

// List is the list view-state: the current page of records, its pagination
// meta and whether a request is in flight. It is safe for concurrent use.
type List struct {
	mu      sync.RWMutex
	fetcher Fetcher
	records []models.Operadora
	meta    *models.Meta
	lastErr error
	latest  uint64
	loading bool
}

// New creates an empty list backed by fetcher.
func New(fetcher Fetcher) *List {
	return &List{
		fetcher: fetcher,
		records: []models.Operadora{},
	}
}

// Records returns a copy of the current page of records.
func (l *List) Records() []models.Operadora {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Operadora, len(l.records))
	copy(out, l.records)
	return out
}

// Meta returns the pagination meta of the last applied response, or nil if
// none was applied yet.
func (l *List) Meta() *models.Meta {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.meta == nil {
		return nil
	}
	m := *l.meta
	return &m
}

// Loading reports whether the latest issued request is still in flight.
func (l *List) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Err returns the error of the latest settled request, if it failed.
func (l *List) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// Begin marks the list as loading and issues a new request token. Any
// request issued before it becomes stale.
func (l *List) Begin(page int, search string) Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latest++
	l.loading = true
	return Request{Token: l.latest, Page: page, Search: search}
}

// Settle applies the outcome of req. Responses for requests that are no
// longer the latest, or that Begin never issued, are discarded and leave the
// state untouched. On failure records and meta keep their previous values.
func (l *List) Settle(req Request, resp *models.PaginatedResponse[models.Operadora], err error) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	if req.Token == 0 || req.Token != l.latest {
		logger.Debug("discarding stale operadoras response", "token", req.Token, "latest", l.latest)
		return Result{Request: req, Err: ErrStale, Stale: true}
	}
	l.loading = false

	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		l.lastErr = err
		logger.Error("failed to list operadoras", "page", req.Page, "search", req.Search, "error", err)
		return Result{Request: req, Err: err}
	}

	if !resp.Meta.Consistent() {
		logger.Warn("inconsistent pagination meta", "total", resp.Meta.Total, "limit", resp.Meta.Limit, "total_pages", resp.Meta.TotalPages)
	}

	l.records = resp.Data
	if l.records == nil {
		l.records = []models.Operadora{}
	}
	meta := resp.Meta
	l.meta = &meta
	l.lastErr = nil
	return Result{Request: req}
}

// List fetches one page synchronously: Begin, one GET with limit PageSize,
// then Settle.
func (l *List) List(ctx context.Context, page int, search string) Result {
	req := l.Begin(page, search)
	logger.Debug("listing operadoras", "page", page, "search", search, "token", req.Token)
	resp, err := l.fetcher.ListOperadoras(ctx, page, PageSize, search)
	return l.Settle(req, resp, err)
}

// Fetch performs the network call for req without touching the state. It
// lets the TUI run the request in a command goroutine and call Settle on the
// update loop.
func (l *List) Fetch(ctx context.Context, req Request) (*models.PaginatedResponse[models.Operadora], error) {
	return l.fetcher.ListOperadoras(ctx, req.Page, PageSize, req.Search)
}
