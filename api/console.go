package api

import (
	"ledgerconsole/access"
	"ledgerconsole/config"
	"ledgerconsole/middleware"
	"ledgerconsole/models"

	"github.com/gin-gonic/gin"
)

// ConsoleHandler 当前会话信息与导航
type ConsoleHandler struct {
	sidebar []config.SidebarGroup
}

// NewConsoleHandler 创建处理器
func NewConsoleHandler(sidebar []config.SidebarGroup) *ConsoleHandler {
	return &ConsoleHandler{sidebar: sidebar}
}

// SessionInfo 当前会话
type SessionInfo struct {
	User        *models.User `json:"user"`
	IsAdmin     bool         `json:"isAdmin"`
	Permissions []string     `json:"permissions"`
	TokenExpiry int64        `json:"tokenExpiry"`
}

// Session 当前用户、是否超管、可访问路由
// @Summary 当前会话
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=SessionInfo} "会话信息"
// @Failure 401 {object} Response "未登录或登录已过期"
// @Router /console/session [get]
func (h *ConsoleHandler) Session(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s == nil {
		InternalError(c, "会话不存在")
		return
	}
	perms := s.Permissions()
	if perms == nil {
		perms = []string{}
	}
	Success(c, SessionInfo{
		User:        s.User,
		IsAdmin:     s.IsAdmin,
		Permissions: perms,
		TokenExpiry: s.Expiry.UnixMilli(),
	})
}

// Sidebar 按当前用户能力过滤的侧边栏
// @Summary 侧边栏
// @Description 超管返回全部分组；普通用户只返回权限集合中的子菜单，无可见子菜单的分组省略
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=[]config.SidebarGroup} "侧边栏"
// @Router /console/sidebar [get]
func (h *ConsoleHandler) Sidebar(c *gin.Context) {
	Success(c, access.FilterGroups(middleware.CurrentCapability(c), h.sidebar))
}
