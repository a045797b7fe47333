package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"ledgerconsole/backend"
	"ledgerconsole/guard"
	"ledgerconsole/middleware"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response 通用响应结构
type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Message: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// upstream 访问后端的处理器共用部分
type upstream struct {
	client   *backend.Client
	sessions *session.Manager
	log      logrus.FieldLogger
}

// fail 按错误类别处理后端调用失败：
// 认证失败清除会话并跳转登录页；403 通知并跳转首页；其余只通知，不改变状态
func (u *upstream) fail(c *gin.Context, err error, fallback string) {
	switch {
	case backend.IsUnauthorized(err):
		if sid := middleware.SessionID(c); sid != "" {
			if clearErr := u.sessions.Store().Clear(c.Request.Context(), sid); clearErr != nil {
				u.log.WithError(clearErr).Warn("清除会话失败")
			}
		}
		u.sessions.Expire(c.Writer)
		middleware.AbortRedirect(c, http.StatusUnauthorized, "登录已过期，请重新登录", guard.SignInRoute)
	case backend.IsForbidden(err):
		middleware.AbortRedirect(c, http.StatusForbidden, "没有访问权限", middleware.DashboardRoute)
	case backend.IsValidation(err):
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
	case backend.IsNotFound(err):
		NotFound(c, "数据不存在")
	case isTimeout(err):
		Error(c, http.StatusGatewayTimeout, "后端请求超时")
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			Error(c, apiErr.Status, SafeErrorMessage(err, fallback))
			return
		}
		u.log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		Error(c, http.StatusBadGateway, SafeErrorMessage(err, fallback))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
