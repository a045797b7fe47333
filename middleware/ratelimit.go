package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
)

// maxTrackedIPs 限流器最多跟踪的 IP 数，超出时淘汰最久未访问的
const maxTrackedIPs = 10000

// RateLimiter 滑动窗口限流，按客户端 IP 计数
type RateLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	hits        *lru.Cache[string, []time.Time]
	now         func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	hits, _ := lru.New[string, []time.Time](maxTrackedIPs)
	return &RateLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		hits:        hits,
		now:         time.Now,
	}
}

// Allow 记录一次尝试，超过窗口内上限返回 false
func (l *RateLimiter) Allow(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	ts, _ := l.hits.Get(key)
	kept := make([]time.Time, 0, len(ts)+1)
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.maxAttempts {
		l.hits.Add(key, kept)
		return false
	}
	l.hits.Add(key, append(kept, now))
	return true
}

// Handler gin 中间件
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(maxAttempts, window).Handler()
}
