package web

import (
	"bytes"
	"encoding/json"
	"github.com/explore-flights/flight-aggregator/business/assistant"
	"github.com/explore-flights/flight-aggregator/business/flightsearch"
	"github.com/explore-flights/flight-aggregator/business/flightstatus"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/gemini"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testOrigin = "http://localhost:3000"

// fakeProvider serves canned responses for the Amadeus and Gemini endpoints and records every call.
type fakeProvider struct {
	mtx      sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

func newFakeProvider(t *testing.T, handlers map[string]http.HandlerFunc) (*fakeProvider, string) {
	t.Helper()

	p := &fakeProvider{
		calls:    make(map[string]int),
		handlers: handlers,
	}

	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	return p, srv.URL
}

func (p *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mtx.Lock()
	p.calls[r.URL.Path]++
	p.mtx.Unlock()

	if r.URL.Path == "/v1/security/oauth2/token" {
		_, _ = w.Write([]byte(`{"token_type":"Bearer","access_token":"tkn","expires_in":1799}`))
		return
	}

	h, ok := p.handlers[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"status":404,"title":"NOT FOUND"}]}`))
		return
	}

	h(w, r)
}

func (p *fakeProvider) Calls(path string) int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.calls[path]
}

func staticJson(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		_, _ = w.Write([]byte(body))
	}
}

func newTestEcho(t *testing.T, baseUrl string, timeout time.Duration) *echo.Echo {
	t.Helper()

	log := zaptest.NewLogger(t)
	amc := amadeus.NewClient("id", "secret", amadeus.WithBaseUrl(baseUrl))
	gc := gemini.NewClient("key", gemini.WithBaseUrl(baseUrl))

	return NewServer(
		log,
		ServerOptions{
			AllowedOrigins: []string{testOrigin},
			RequestTimeout: timeout,
		},
		NewFlightsHandler(flightsearch.NewSearch(amc), flightstatus.NewLookup(amc, log)),
		NewAssistantHandler(assistant.New(gc, "You are a travel assistant.")),
	)
}

func doJson(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())

	return rec, res
}

func TestNewServer_CORS(t *testing.T) {
	e := newTestEcho(t, "http://127.0.0.1:0", time.Second)

	req := httptest.NewRequest(http.MethodOptions, "/api/flights/search", nil)
	req.Header.Set(echo.HeaderOrigin, testOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example.com")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestNewServer_Metrics(t *testing.T) {
	e := newTestEcho(t, "http://127.0.0.1:0", time.Second)

	rec, _ := doJson(t, e, http.MethodGet, "/api/test", "")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `flights_http_requests_total{route="/api/test",status="200"}`)
}
