package middleware

import (
	"net/http"

	"ledgerconsole/access"
	"ledgerconsole/guard"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
)

// AuthGuard 受保护路由守卫，每个请求都从 Initializing 重新校验
// 未通过时会话已被清除，页面导航跳转登录页，JSON 请求返回 401
func AuthGuard(mgr *session.Manager, g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, _ := mgr.ID(c.Request)
		d := g.Evaluate(c.Request.Context(), sid)
		if !d.Authorized() {
			mgr.Expire(c.Writer)
			AbortRedirect(c, http.StatusUnauthorized, "登录已过期，请重新登录", d.Redirect)
			return
		}

		c.Set(ctxSessionID, sid)
		c.Set(ctxSession, d.Session)
		c.Set(ctxCapability, access.FromSession(d.Session))
		c.Next()
	}
}
