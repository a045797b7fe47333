package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"ledgerconsole/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
	}).SignedString([]byte("backend"))
	require.NoError(t, err)
	return s
}

type observed struct {
	mu    sync.Mutex
	calls []string
}

func (o *observed) fn(method, endpoint string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+endpoint+" "+http.StatusText(status))
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *observed) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &observed{}
	return New(Options{BaseURL: srv.URL + "/api/", Observe: obs.fn}), obs
}

func TestClient_AttachesBearerToken(t *testing.T) {
	tok := tokenExpiringIn(t, time.Hour)
	var gotAuth, gotPath string
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]models.Menu{{ID: 1, Name: "Sales", URL: "sales"}})
	})

	menus, err := c.Menus(context.Background(), tok)
	require.NoError(t, err)
	assert.Len(t, menus, 1)
	assert.Equal(t, "Bearer "+tok, gotAuth)
	assert.Equal(t, "/api/menus", gotPath)
	assert.Equal(t, []string{"GET /menus OK"}, obs.calls)
}

func TestClient_TokenExpiringSoonIsNotSent(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	_, err := c.Roles(context.Background(), tokenExpiringIn(t, 4*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpiring)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	_, err = c.Roles(context.Background(), tokenExpiringIn(t, 6*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"access denied"}`))
	})

	_, err := c.RoleMenus(context.Background(), tokenExpiringIn(t, time.Hour), "clerk")
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsUnauthorized(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "access denied", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "403")
}

func TestClient_PlainTextErrorTruncatedOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("服务器内部错误", 50)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	})

	_, err := c.Roles(context.Background(), tokenExpiringIn(t, time.Hour))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.Equal(t, maxErrorRunes, utf8.RuneCountInString(apiErr.Message))
	assert.True(t, strings.HasPrefix(body, apiErr.Message))
}

func TestClient_Login(t *testing.T) {
	var got models.LoginRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"token":"t","status":"success","message":"ok","data":{"id":1,"username":"alice","checkAdmin":true,"role":{"id":1,"name":"admin"}}}`))
	})

	resp, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "t", resp.Token)
	assert.True(t, resp.Data.CheckAdmin)
	assert.Equal(t, "admin", resp.Data.Role.Name)
}

func TestClient_ValidationBlocksRequest(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})
	tok := tokenExpiringIn(t, time.Hour)

	_, err := c.Login(context.Background(), models.LoginRequest{Username: "alice"})
	assert.True(t, IsValidation(err))

	_, err = c.CreateMenu(context.Background(), tok, models.MenuCreateRequest{Name: "Sales"})
	assert.True(t, IsValidation(err))

	_, err = c.CreateCoa(context.Background(), tok, models.Coa{})
	assert.True(t, IsValidation(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	obs := &observed{}
	c := New(Options{BaseURL: srv.URL, Observe: obs.fn})

	_, err := c.CoaList(context.Background(), tokenExpiringIn(t, time.Hour))
	require.Error(t, err)
	assert.False(t, IsForbidden(err))
	assert.Equal(t, []string{"GET /coa/list "}, obs.calls)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	c := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := c.ParentMenus(context.Background(), tokenExpiringIn(t, time.Hour))
	assert.Error(t, err)
}

func TestClient_MenusSingleflight(t *testing.T) {
	var hits int32
	gate := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-gate
		_, _ = w.Write([]byte(`[{"id":1,"name":"Sales","url":"sales","parentId":null}]`))
	})
	tok := tokenExpiringIn(t, time.Hour)

	var wg sync.WaitGroup
	results := make([][]models.Menu, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Menus(context.Background(), tok)
		}(i)
	}
	// 等待首个请求到达后端
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	for _, r := range results {
		assert.Len(t, r, 1)
	}
}
