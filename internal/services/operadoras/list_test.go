package operadoras

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/operadoras-tui/internal/api"
	"github.com/j-veylop/operadoras-tui/internal/models"
)

const acmePage = `{"data":[{"cnpj":"123","razao_social":"Acme Saude","uf":"SP"}],
	"meta":{"page":1,"limit":10,"total":1,"total_pages":1}}`

func newServerList(t *testing.T, handler http.HandlerFunc) *List {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	return New(c)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// stubFetcher answers from a function, for tests that do not need HTTP.
type stubFetcher struct {
	fn func(ctx context.Context, page, limit int, search string) (*models.PaginatedResponse[models.Operadora], error)
}

func (s stubFetcher) ListOperadoras(ctx context.Context, page, limit int, search string) (*models.PaginatedResponse[models.Operadora], error) {
	return s.fn(ctx, page, limit, search)
}

func page(cnpjs ...string) *models.PaginatedResponse[models.Operadora] {
	resp := &models.PaginatedResponse[models.Operadora]{
		Data: []models.Operadora{},
		Meta: models.Meta{Page: 1, Limit: PageSize, Total: len(cnpjs), TotalPages: 1},
	}
	for _, c := range cnpjs {
		resp.Data = append(resp.Data, models.Operadora{CNPJ: c})
	}
	return resp
}

func TestNew_InitialState(t *testing.T) {
	l := New(stubFetcher{})
	assert.Empty(t, l.Records())
	assert.NotNil(t, l.Records())
	assert.Nil(t, l.Meta())
	assert.False(t, l.Loading())
	assert.NoError(t, l.Err())
}

func TestList_SendsOneRequestWithFixedLimit(t *testing.T) {
	var calls atomic.Int32
	var gotQuery string
	l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, acmePage)
	})

	res := l.List(context.Background(), 2, "")
	require.True(t, res.OK())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "limit=10&page=2", gotQuery)
}

func TestList_AcmeSearch(t *testing.T) {
	var gotQuery string
	l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, acmePage)
	})

	res := l.List(context.Background(), 1, "Acme")
	require.NoError(t, res.Err)
	assert.False(t, res.Stale)
	assert.Equal(t, "limit=10&page=1&search=Acme", gotQuery)

	records := l.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "123", records[0].CNPJ)
	assert.Equal(t, "Acme Saude", records[0].RazaoSocial)
	assert.Equal(t, "SP", records[0].UF)

	require.NotNil(t, l.Meta())
	assert.Equal(t, models.Meta{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, *l.Meta())
	assert.False(t, l.Loading())
}

func TestList_EmptyPage(t *testing.T) {
	l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[],"meta":{"page":1,"limit":10,"total":0,"total_pages":0}}`)
	})

	res := l.List(context.Background(), 1, "zzz")
	require.True(t, res.OK())
	assert.Empty(t, l.Records())
	require.NotNil(t, l.Meta())
	assert.Equal(t, 0, l.Meta().Total)
}

func TestList_ServerErrorLeavesInitialState(t *testing.T) {
	l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"erro":"boom"}`)
	})

	res := l.List(context.Background(), 1, "")
	require.Error(t, res.Err)
	assert.False(t, res.Stale)

	var se *api.StatusError
	require.ErrorAs(t, res.Err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	assert.Empty(t, l.Records())
	assert.Nil(t, l.Meta())
	assert.False(t, l.Loading())
	assert.Equal(t, res.Err, l.Err())
}

func TestList_FailureKeepsPreviousPage(t *testing.T) {
	var fail atomic.Bool
	l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeJSON(w, http.StatusOK, `not json`)
			return
		}
		writeJSON(w, http.StatusOK, acmePage)
	})

	require.True(t, l.List(context.Background(), 1, "").OK())
	fail.Store(true)

	res := l.List(context.Background(), 2, "")
	require.Error(t, res.Err)
	require.Len(t, l.Records(), 1)
	assert.Equal(t, "123", l.Records()[0].CNPJ)
	assert.Equal(t, 1, l.Meta().Page)
	assert.False(t, l.Loading())
}

func TestList_SuccessClearsError(t *testing.T) {
	fail := true
	l := New(stubFetcher{fn: func(context.Context, int, int, string) (*models.PaginatedResponse[models.Operadora], error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return page("1"), nil
	}})

	assert.Error(t, l.List(context.Background(), 1, "").Err)
	assert.Error(t, l.Err())

	fail = false
	assert.True(t, l.List(context.Background(), 1, "").OK())
	assert.NoError(t, l.Err())
}

func TestList_LoadingWhileInFlight(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantOK  bool
		wantLen int
	}{
		{"Success", http.StatusOK, acmePage, true, 1},
		{"ServerError", http.StatusInternalServerError, `{"erro":"falha interna"}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})
			l := newServerList(t, func(w http.ResponseWriter, r *http.Request) {
				close(started)
				<-release
				writeJSON(w, tt.status, tt.body)
			})

			done := make(chan Result, 1)
			go func() { done <- l.List(context.Background(), 1, "") }()

			<-started
			assert.True(t, l.Loading())
			assert.Empty(t, l.Records())
			assert.Nil(t, l.Meta())
			close(release)

			res := <-done
			assert.Equal(t, tt.wantOK, res.OK())
			assert.False(t, l.Loading())
			assert.Len(t, l.Records(), tt.wantLen)
			if tt.wantOK {
				assert.NotNil(t, l.Meta())
			} else {
				assert.Nil(t, l.Meta())
				assert.Error(t, l.Err())
			}
		})
	}
}

func TestList_SettleRejectsUnissuedRequest(t *testing.T) {
	l := New(stubFetcher{})

	res := l.Settle(Request{}, page("X"), nil)
	assert.True(t, res.Stale)
	assert.ErrorIs(t, res.Err, ErrStale)
	assert.Empty(t, l.Records())
	assert.Nil(t, l.Meta())
	assert.False(t, l.Loading())
}

func TestList_OlderResponseIsDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	l := New(stubFetcher{fn: func(_ context.Context, p, _ int, _ string) (*models.PaginatedResponse[models.Operadora], error) {
		if p == 1 {
			close(startedA)
			<-releaseA
			return page("A"), nil
		}
		return page("B"), nil
	}})

	var wg sync.WaitGroup
	var resA Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		resA = l.List(context.Background(), 1, "")
	}()
	<-startedA

	// B is issued after A and settles first.
	resB := l.List(context.Background(), 2, "")
	require.True(t, resB.OK())
	assert.False(t, l.Loading())

	close(releaseA)
	wg.Wait()

	assert.True(t, resA.Stale)
	assert.ErrorIs(t, resA.Err, ErrStale)
	require.Len(t, l.Records(), 1)
	assert.Equal(t, "B", l.Records()[0].CNPJ)
	assert.False(t, l.Loading())
}

func TestList_LoadingUntilLatestSettles(t *testing.T) {
	l := New(stubFetcher{})

	a := l.Begin(1, "")
	b := l.Begin(2, "")

	res := l.Settle(a, page("A"), nil)
	assert.True(t, res.Stale)
	assert.True(t, l.Loading(), "older response must not end loading")
	assert.Empty(t, l.Records())

	res = l.Settle(b, page("B"), nil)
	assert.True(t, res.OK())
	assert.False(t, l.Loading())
	assert.Equal(t, "B", l.Records()[0].CNPJ)
}

func TestSettle_StaleFailureIsIgnored(t *testing.T) {
	l := New(stubFetcher{})

	a := l.Begin(1, "")
	b := l.Begin(1, "x")
	require.True(t, l.Settle(b, page("B"), nil).OK())

	res := l.Settle(a, nil, errors.New("timeout"))
	assert.True(t, res.Stale)
	assert.NoError(t, l.Err())
	assert.Equal(t, "B", l.Records()[0].CNPJ)
}

func TestSettle_NilResponse(t *testing.T) {
	l := New(stubFetcher{})
	res := l.Settle(l.Begin(1, ""), nil, nil)
	assert.Error(t, res.Err)
	assert.Nil(t, l.Meta())
}

func TestRecords_ReturnsCopy(t *testing.T) {
	l := New(stubFetcher{})
	require.True(t, l.Settle(l.Begin(1, ""), page("A"), nil).OK())

	recs := l.Records()
	recs[0].CNPJ = "mutated"
	assert.Equal(t, "A", l.Records()[0].CNPJ)
}

func TestFetch_DoesNotTouchState(t *testing.T) {
	var gotLimit int
	l := New(stubFetcher{fn: func(_ context.Context, _, limit int, _ string) (*models.PaginatedResponse[models.Operadora], error) {
		gotLimit = limit
		return page("A"), nil
	}})

	req := l.Begin(3, "acme")
	resp, err := l.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, PageSize, gotLimit)
	assert.True(t, l.Loading())
	assert.Empty(t, l.Records())

	assert.True(t, l.Settle(req, resp, nil).OK())
}
