package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper lets tests answer requests without a server.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"Plain", "http://localhost:5000", "http://localhost:5000/api", false},
		{"TrailingSlash", "http://localhost:5000/", "http://localhost:5000/api", false},
		{"WithPath", "https://example.com/backend", "https://example.com/backend/api", false},
		{"Empty", "", "", true},
		{"NoScheme", "localhost:5000", "", true},
		{"BadScheme", "ftp://example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestNew_Options(t *testing.T) {
	transport := &MockRoundTripper{}
	tests := []struct {
		name string
		opts func(hc *http.Client) []Option
	}{
		{"TimeoutFirst", func(hc *http.Client) []Option {
			return []Option{WithTimeout(5 * time.Second), WithHTTPClient(hc)}
		}},
		{"ClientFirst", func(hc *http.Client) []Option {
			return []Option{WithHTTPClient(hc), WithTimeout(5 * time.Second)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := &http.Client{Transport: transport}
			c, err := New("http://localhost", tt.opts(shared)...)
			require.NoError(t, err)

			assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
			assert.Same(t, transport, c.httpClient.Transport)
			assert.NotSame(t, shared, c.httpClient)
			assert.Zero(t, shared.Timeout, "caller's client must not be modified")
		})
	}
}

func TestNew_HTTPClientWithoutTimeoutIsShared(t *testing.T) {
	shared := &http.Client{}
	c, err := New("http://localhost", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Same(t, shared, c.httpClient)
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestListOperadoras(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		jsonResponse(w, http.StatusOK, `{"data":[{"cnpj":"123","razao_social":"Acme Saude","uf":"SP"}],
			"meta":{"page":1,"limit":10,"total":1,"total_pages":1}}`)
	})

	resp, err := c.ListOperadoras(context.Background(), 1, 10, "Acme")
	require.NoError(t, err)

	assert.Equal(t, "/api/operadoras", gotPath)
	assert.Equal(t, "limit=10&page=1&search=Acme", gotQuery)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "123", resp.Data[0].CNPJ)
	assert.Equal(t, "Acme Saude", resp.Data[0].RazaoSocial)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestListOperadoras_OmitsEmptySearch(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		jsonResponse(w, http.StatusOK, `{"data":[],"meta":{"page":3,"limit":10,"total":0,"total_pages":0}}`)
	})

	_, err := c.ListOperadoras(context.Background(), 3, 10, "")
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=3", gotQuery)
}

func TestListOperadoras_SearchSentUnchanged(t *testing.T) {
	var gotSearch string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		jsonResponse(w, http.StatusOK, `{"data":[],"meta":{"page":1,"limit":10,"total":0,"total_pages":0}}`)
	})

	_, err := c.ListOperadoras(context.Background(), 1, 10, " São Paulo ")
	require.NoError(t, err)
	assert.Equal(t, " São Paulo ", gotSearch)
}

func TestGetOperadora(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonResponse(w, http.StatusOK, `{"cnpj":"12345678000190","razao_social":"Acme","uf":"SP",
			"cidade":"Campinas","representante":"Fulano"}`)
	})

	op, err := c.GetOperadora(context.Background(), "12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "/api/operadoras/12345678000190", gotPath)
	assert.Equal(t, "Campinas", op.Cidade)
	assert.Equal(t, "Fulano", op.Representante)
}

func TestGetOperadora_InvalidCNPJIsLocal(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.GetOperadora(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidCNPJ)
	assert.False(t, called, "no request should be sent for an invalid cnpj")
}

func TestGetOperadora_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, `{"erro":"Operadora não encontrada"}`)
	})

	_, err := c.GetOperadora(context.Background(), "12345678000190")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Operadora não encontrada", se.Message)
}

func TestListDespesas(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		jsonResponse(w, http.StatusOK, `{"cnpj":"12345678000190","data":[
			{"ano":2024,"trimestre":1,"valor_despesas":10.5}],
			"meta":{"page":1,"limit":12,"total":1,"total_pages":1}}`)
	})

	resp, err := c.ListDespesas(context.Background(), "12345678000190", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/operadoras/12345678000190/despesas", gotPath)
	assert.Equal(t, "limit=12&page=1", gotQuery)
	assert.Equal(t, "12345678000190", resp.CNPJ)
	require.Len(t, resp.Data, 1)
	assert.InDelta(t, 10.5, resp.Data[0].Valor(), 0.0001)
}

func TestListDespesas_BadRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusBadRequest, `{"erro":"CNPJ inválido"}`)
	})

	_, err := c.ListDespesas(context.Background(), "12345678000190", 1, 12)
	assert.ErrorIs(t, err, ErrInvalidCNPJ)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetEstatisticas(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/estatisticas", r.URL.Path)
		jsonResponse(w, http.StatusOK, `{"cache":true,"total_despesas":300,"media_despesas":100,
			"despesas_por_uf":[{"uf":"SP","total":200},{"uf":"RJ","total":100}],
			"top_5_operadoras":[{"razao_social":"Acme","total_despesas":150}]}`)
	})

	stats, err := c.GetEstatisticas(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Cached)
	assert.InDelta(t, 300.0, stats.TotalDespesas, 0.0001)
	assert.Len(t, stats.DespesasPorUF, 2)
	require.Len(t, stats.TopOperadoras, 1)
	assert.Equal(t, "Acme", stats.TopOperadoras[0].RazaoSocial)
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name      string
		transport http.RoundTripper
		check     func(t *testing.T, err error)
	}{
		{
			name: "TransportError",
			transport: &MockRoundTripper{
				RoundTripFunc: func(req *http.Request) (*http.Response, error) {
					return nil, errors.New("connection refused")
				},
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
		{
			name: "ServerError",
			transport: &MockRoundTripper{
				RoundTripFunc: func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusInternalServerError,
						Body:       io.NopCloser(strings.NewReader("boom")),
					}, nil
				},
			},
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, 500, se.StatusCode)
				assert.Equal(t, "boom", se.Message)
			},
		},
		{
			name: "MalformedBody",
			transport: &MockRoundTripper{
				RoundTripFunc: func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(strings.NewReader("<html>")),
					}, nil
				},
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to parse response")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("http://api.test", WithHTTPClient(&http.Client{Transport: tt.transport}))
			require.NoError(t, err)

			_, err = c.ListOperadoras(context.Background(), 1, 10, "")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGet_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetEstatisticas(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusError_Message(t *testing.T) {
	long := strings.Repeat("x", 300)
	se := newStatusError(502, []byte(long))
	assert.Len(t, se.Message, maxErrorMessage+3)

	accented := strings.Repeat("a", maxErrorMessage-1) + "ção"
	se = newStatusError(500, []byte(accented))
	assert.True(t, utf8.ValidString(se.Message))
	assert.Equal(t, strings.Repeat("a", maxErrorMessage-1)+"ç...", se.Message)

	empty := newStatusError(503, nil)
	assert.Equal(t, "api request failed (status 503)", empty.Error())
}
