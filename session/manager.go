package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// ErrBadCookie cookie 缺失或签名不匹配
var ErrBadCookie = errors.New("session: invalid cookie")

// ManagerOptions 会话管理器参数
type ManagerOptions struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool // release 模式下仅 HTTPS 传输
}

// Manager 负责会话 id 的签发、cookie 签名与存储读写
type Manager struct {
	store Store
	opts  ManagerOptions
	key   []byte
	newID func() string
}

// NewManager 创建会话管理器，签名密钥由 secret 经 HKDF 派生
func NewManager(store Store, opts ManagerOptions) (*Manager, error) {
	if opts.CookieName == "" {
		opts.CookieName = "console_sid"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Secret == "" {
		return nil, errors.New("session: secret is required")
	}
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(opts.Secret), nil, []byte("ledgerconsole session cookie"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	return &Manager{
		store: store,
		opts:  opts,
		key:   key,
		newID: func() string { return uuid.NewString() },
	}, nil
}

// Store 底层存储
func (m *Manager) Store() Store {
	return m.store
}

// CookieName cookie 名称
func (m *Manager) CookieName() string {
	return m.opts.CookieName
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.key)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode 生成 cookie 值 id.signature
func (m *Manager) Encode(id string) string {
	return id + "." + m.sign(id)
}

// Decode 校验 cookie 值并返回会话 id
func (m *Manager) Decode(value string) (string, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", ErrBadCookie
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return "", ErrBadCookie
	}
	return id, nil
}

// ID 从请求 cookie 读取已验证的会话 id
func (m *Manager) ID(r *http.Request) (string, error) {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return "", ErrBadCookie
	}
	return m.Decode(c.Value)
}

// Load 读取请求对应的会话；返回的 id 可用于 Clear
func (m *Manager) Load(ctx context.Context, r *http.Request) (string, *Session, error) {
	id, err := m.ID(r)
	if err != nil {
		return "", nil, err
	}
	s, err := Load(ctx, m.store, id)
	if err != nil {
		return id, nil, err
	}
	return id, s, nil
}

// Issue 登录成功后写入新会话并下发 cookie
// 已有会话先清除，避免会话固定
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, r *http.Request, s *Session) (string, error) {
	if old, err := m.ID(r); err == nil {
		_ = m.store.Clear(ctx, old)
	}
	id := m.newID()
	if err := Save(ctx, m.store, id, s, m.opts.TTL); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    m.Encode(id),
		Path:     "/",
		MaxAge:   int(m.opts.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Destroy 清除会话全部键并删除 cookie
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if id, idErr := m.ID(r); idErr == nil {
		err = m.store.Clear(ctx, id)
	}
	m.Expire(w)
	return err
}

// Expire 删除客户端 cookie
func (m *Manager) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
