// Package guard 在每次进入受保护视图时校验会话
package guard

import (
	"context"
	"errors"
	"time"

	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/sirupsen/logrus"
)

// SignInRoute 未授权时的跳转目标
const SignInRoute = "/auth/signin"

// State 守卫状态
type State int

const (
	// Initializing 尚未完成校验，不输出受保护内容
	Initializing State = iota
	// Authorized 校验通过
	Authorized
	// Unauthorized 校验失败，会话已清除并跳转登录页（本次请求内终态）
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "initializing"
	}
}

// 未授权原因
const (
	ReasonNoSession = "no_session"
	ReasonNoToken   = "no_token"
	ReasonNoExpiry  = "no_expiry"
	ReasonExpired   = "expired"
	ReasonDecode    = "decode_failed"
	ReasonStore     = "store_error"
)

// Decision 一次校验的结果
type Decision struct {
	State     State
	Reason    string
	SessionID string
	Session   *session.Session
	Redirect  string
}

// Authorized 是否放行
func (d Decision) Authorized() bool {
	return d.State == Authorized
}

// Guard 访问守卫
type Guard struct {
	store   session.Store
	decoder *token.Decoder
	now     func() time.Time
	log     logrus.FieldLogger
	observe func(Decision)
}

// Option 守卫可选参数
type Option func(*Guard)

// WithClock 注入时钟
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithLogger 注入日志
func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Guard) { g.log = log }
}

// WithObserver 每次判定后回调（指标）
func WithObserver(fn func(Decision)) Option {
	return func(g *Guard) { g.observe = fn }
}

// New 创建守卫
func New(store session.Store, decoder *token.Decoder, opts ...Option) *Guard {
	g := &Guard{
		store:   store,
		decoder: decoder,
		now:     time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate 从 Initializing 开始执行一次完整校验
func (g *Guard) Evaluate(ctx context.Context, sid string) Decision {
	d := g.evaluate(ctx, sid)
	if d.State == Unauthorized {
		d.Redirect = SignInRoute
		if sid != "" {
			if err := g.store.Clear(ctx, sid); err != nil {
				g.log.WithError(err).WithField("reason", d.Reason).Warn("清除会话失败")
			}
		}
		g.log.WithField("reason", d.Reason).Debug("会话校验未通过")
	}
	if g.observe != nil {
		g.observe(d)
	}
	return d
}

func (g *Guard) evaluate(ctx context.Context, sid string) Decision {
	d := Decision{State: Initializing, SessionID: sid}
	if sid == "" {
		return g.deny(d, ReasonNoSession)
	}
	s, err := session.Load(ctx, g.store, sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return g.deny(d, ReasonNoSession)
		}
		g.log.WithError(err).Error("读取会话失败")
		return g.deny(d, ReasonStore)
	}
	d.Session = s
	switch {
	case !s.HasToken():
		return g.deny(d, ReasonNoToken)
	case !s.HasExpiry():
		return g.deny(d, ReasonNoExpiry)
	case !g.now().Before(s.Expiry):
		return g.deny(d, ReasonExpired)
	}
	if _, err := g.decoder.Decode(s.Token); err != nil {
		return g.deny(d, ReasonDecode)
	}
	d.State = Authorized
	return d
}

func (g *Guard) deny(d Decision, reason string) Decision {
	d.State = Unauthorized
	d.Reason = reason
	return d
}
