package middleware

import (
	"net/http"

	"ledgerconsole/backend"

	"github.com/gin-gonic/gin"
)

// RequireRoute 路由级权限，需在 AuthGuard 之后使用；超管绕过
func RequireRoute(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentCapability(c).CanAccess(permission) {
			AbortRedirect(c, http.StatusForbidden, "没有访问权限", DashboardRoute)
			return
		}
		c.Next()
	}
}

// RequireResource 解析 :resource 并按方法校验权限：POST 需要 <resource>/create，其余需要 <resource>
func RequireResource() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := backend.LookupResource(c.Param("resource"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "资源不存在",
			})
			return
		}
		perm := res.Permission()
		if c.Request.Method == http.MethodPost {
			perm = res.CreatePermission()
		}
		if !CurrentCapability(c).CanAccess(perm) {
			AbortRedirect(c, http.StatusForbidden, "没有访问权限", DashboardRoute)
			return
		}
		c.Set(ctxResource, res)
		c.Next()
	}
}
