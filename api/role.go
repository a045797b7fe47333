package api

import (
	"ledgerconsole/backend"
	"ledgerconsole/menutree"
	"ledgerconsole/middleware"
	"ledgerconsole/models"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RoleHandler 角色管理
type RoleHandler struct {
	upstream
	tree TreeOptions
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(client *backend.Client, sessions *session.Manager, tree TreeOptions, log logrus.FieldLogger) *RoleHandler {
	return &RoleHandler{
		upstream: upstream{client: client, sessions: sessions, log: log},
		tree:     tree,
	}
}

// List 角色列表
// @Summary 角色列表
// @Tags 角色
// @Produce json
// @Success 200 {object} Response{data=[]models.Role} "角色列表"
// @Router /console/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.client.Roles(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "获取角色失败")
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}
	Success(c, roles)
}

// Create 创建角色
// @Summary 创建角色
// @Tags 角色
// @Accept json
// @Produce json
// @Param request body models.RoleCreateRequest true "角色"
// @Success 200 {object} Response{data=models.Role} "创建成功"
// @Router /console/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req models.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	role, err := h.client.CreateRole(c.Request.Context(), middleware.Token(c), req)
	if err != nil {
		h.fail(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", role)
}

// RoleMenusResult 角色已分配菜单
type RoleMenusResult struct {
	Role  string                        `json:"role"`
	Menus []models.Menu                 `json:"menus"`
	Tree  []*menutree.Node[models.Menu] `json:"tree"`
}

// Menus 角色已分配的菜单；后端 403 时通知并跳转首页
// @Summary 角色菜单
// @Tags 角色
// @Produce json
// @Param name path string true "角色名"
// @Success 200 {object} Response{data=RoleMenusResult} "角色菜单"
// @Failure 403 {object} Response "没有访问权限"
// @Router /console/roles/{name}/menus [get]
func (h *RoleHandler) Menus(c *gin.Context) {
	name := c.Param("name")
	menus, err := h.client.RoleMenus(c.Request.Context(), middleware.Token(c), name)
	if err != nil {
		h.fail(c, err, "获取角色菜单失败")
		return
	}
	if menus == nil {
		menus = []models.Menu{}
	}
	Success(c, RoleMenusResult{
		Role:  name,
		Menus: menus,
		Tree:  menuForest(menus, h.tree),
	})
}
