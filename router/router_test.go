package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ledgerconsole/api"
	"ledgerconsole/backend"
	"ledgerconsole/config"
	"ledgerconsole/guard"
	"ledgerconsole/menutree"
	"ledgerconsole/metrics"
	"ledgerconsole/sequence"
	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(backendSrv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := session.NewMemoryStore()
	sessions, err := session.NewManager(store, session.ManagerOptions{Secret: "router-test", TTL: time.Hour})
	require.NoError(t, err)
	decoder := token.NewDecoder("")
	tracker, err := sequence.New(16)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, CORSOrigins: []string{"http://localhost:3000"}},
	}
	return SetupRouter(cfg, Deps{
		Client:   backend.New(backend.Options{BaseURL: backendSrv.URL, Decoder: decoder, Logger: log}),
		Sessions: sessions,
		Guard:    guard.New(store, decoder, guard.WithLogger(log)),
		Decoder:  decoder,
		Tracker:  tracker,
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Tree:     api.TreeOptions{Orphans: menutree.OrphanSurface},
		Log:      log,
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestConsoleRequiresSession(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/console/menus", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/auth/signin"`)

	req := httptest.NewRequest(http.MethodGet, "/console/sidebar", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/signin", w.Header().Get("Location"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/console/session", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "console_http_requests_total")
	assert.True(t, strings.Contains(body, `path="/console/session"`), body)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimited(t *testing.T) {
	r := newTestRouter(t)

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
