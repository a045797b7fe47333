package middleware

import (
	"ledgerconsole/access"
	"ledgerconsole/backend"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionID  = "console.session_id"
	ctxSession    = "console.session"
	ctxCapability = "console.capability"
	ctxResource   = "console.resource"
)

// SessionID 当前请求的会话 id（守卫通过后可用）
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

// CurrentSession 当前会话
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentCapability 当前用户能力，未经过守卫时为空权限的普通用户
func CurrentCapability(c *gin.Context) access.Capability {
	if v, ok := c.Get(ctxCapability); ok {
		if capability, ok := v.(access.Capability); ok {
			return capability
		}
	}
	return access.NewStandardUser(nil)
}

// CurrentResource RequireResource 解析出的资源
func CurrentResource(c *gin.Context) (backend.Resource, bool) {
	if v, ok := c.Get(ctxResource); ok {
		if r, ok := v.(backend.Resource); ok {
			return r, true
		}
	}
	return backend.Resource{}, false
}

// Token 当前会话的后端 token
func Token(c *gin.Context) string {
	if s := CurrentSession(c); s != nil {
		return s.Token
	}
	return ""
}
