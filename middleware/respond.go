package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DashboardRoute 无权限时的跳转目标
const DashboardRoute = "/admin/dashboard"

// WantsHTML 浏览器页面导航（而非 XHR/JSON 请求）
func WantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

// AbortRedirect 终止请求并通知客户端跳转
// 页面导航返回 302，其余返回 JSON {success:false, message, redirect}
func AbortRedirect(c *gin.Context, status int, message, target string) {
	if target != "" && WantsHTML(c) {
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	body := gin.H{
		"success": false,
		"message": message,
	}
	if target != "" {
		body["redirect"] = target
	}
	c.AbortWithStatusJSON(status, body)
}
