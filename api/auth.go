package api

import (
	"errors"
	"net/http"

	"ledgerconsole/backend"
	"ledgerconsole/guard"
	"ledgerconsole/models"
	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 登录、登出
type AuthHandler struct {
	upstream
	decoder *token.Decoder
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(client *backend.Client, sessions *session.Manager, decoder *token.Decoder, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		upstream: upstream{client: client, sessions: sessions, log: log},
		decoder:  decoder,
	}
}

// LoginResult 登录结果
type LoginResult struct {
	User        models.User `json:"user"`
	IsAdmin     bool        `json:"isAdmin"`
	Permissions []string    `json:"permissions"`
	TokenExpiry int64       `json:"tokenExpiry"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 调用后端登录，成功后写入会话（token、tokenExpiry、authUser、roles、isAdmin）并下发 console_sid cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResult} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 429 {object} Response "尝试过于频繁"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	resp, err := h.client.Login(c.Request.Context(), req)
	if err != nil {
		if backend.IsUnauthorized(err) || backend.IsForbidden(err) {
			Error(c, http.StatusUnauthorized, loginFailureMessage(err))
			return
		}
		h.fail(c, err, "登录失败")
		return
	}

	expiry, err := h.decoder.Expiry(resp.Token)
	if err != nil {
		h.log.WithError(err).WithField("username", req.Username).Warn("后端返回的 token 无法解码")
		Error(c, http.StatusUnauthorized, "登录凭证无效")
		return
	}

	user := resp.Data
	s := &session.Session{
		Token:   resp.Token,
		Expiry:  expiry,
		User:    &user,
		Roles:   user.Role,
		IsAdmin: user.CheckAdmin,
	}
	if _, err := h.sessions.Issue(c.Request.Context(), c.Writer, c.Request, s); err != nil {
		h.log.WithError(err).Error("写入会话失败")
		InternalError(c, SafeErrorMessage(err, "登录失败"))
		return
	}

	h.log.WithFields(logrus.Fields{"username": user.Username, "admin": user.CheckAdmin}).Info("用户登录")
	message := resp.Message
	if message == "" {
		message = "登录成功"
	}
	SuccessWithMessage(c, message, LoginResult{
		User:        user,
		IsAdmin:     user.CheckAdmin,
		Permissions: s.Permissions(),
		TokenExpiry: expiry.UnixMilli(),
	})
}

func loginFailureMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "用户名或密码错误"
}

// Logout 退出登录，清除会话全部键
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Success 200 {object} Response "已退出"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		h.log.WithError(err).Warn("清除会话失败")
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "已退出登录", Redirect: guard.SignInRoute})
}
