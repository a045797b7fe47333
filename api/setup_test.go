package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerconsole/backend"
	"ledgerconsole/guard"
	"ledgerconsole/menutree"
	"ledgerconsole/middleware"
	"ledgerconsole/models"
	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv 假后端 + 会话存储 + 守卫
type testEnv struct {
	t        *testing.T
	backend  *httptest.Server
	client   *backend.Client
	store    *session.MemoryStore
	sessions *session.Manager
	guard    *guard.Guard
	decoder  *token.Decoder
	log      *logrus.Logger
	tree     TreeOptions
}

func newTestEnv(t *testing.T, upstream http.HandlerFunc) *testEnv {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	mgr, err := session.NewManager(store, session.ManagerOptions{Secret: "test", TTL: time.Hour})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	decoder := token.NewDecoder("")
	return &testEnv{
		t:        t,
		backend:  srv,
		client:   backend.New(backend.Options{BaseURL: srv.URL, Decoder: decoder, Logger: log}),
		store:    store,
		sessions: mgr,
		guard:    guard.New(store, decoder, guard.WithLogger(log)),
		decoder:  decoder,
		log:      log,
		tree:     TreeOptions{Orphans: menutree.OrphanSurface},
	}
}

// protected 创建带守卫的路由组
func (e *testEnv) protected() (*gin.Engine, *gin.RouterGroup) {
	r := gin.New()
	return r, r.Group("/console", middleware.AuthGuard(e.sessions, e.guard))
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend"))
	require.NoError(t, err)
	return s
}

// login 直接写入会话，返回 cookie
func (e *testEnv) login(admin bool, routes ...string) *http.Cookie {
	e.t.Helper()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	role := &models.Role{ID: 2, Name: "clerk"}
	for i, r := range routes {
		role.Menus = append(role.Menus, models.Menu{ID: int64(i + 1), Name: r, URL: r})
	}
	w := httptest.NewRecorder()
	_, err := e.sessions.Issue(context.Background(), w, httptest.NewRequest(http.MethodPost, "/auth/login", nil), &session.Session{
		Token:   signToken(e.t, expiry),
		Expiry:  expiry,
		User:    &models.User{ID: 1, Username: "alice", Role: role, CheckAdmin: admin},
		Roles:   role,
		IsAdmin: admin,
	})
	require.NoError(e.t, err)
	return w.Result().Cookies()[0]
}

func doRequest(r http.Handler, method, path string, cookie *http.Cookie, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
