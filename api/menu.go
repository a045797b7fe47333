package api

import (
	"net/http"
	"strconv"

	"ledgerconsole/access"
	"ledgerconsole/backend"
	"ledgerconsole/menutree"
	"ledgerconsole/middleware"
	"ledgerconsole/models"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MenuHandler 菜单（权限）管理
type MenuHandler struct {
	upstream
	tree TreeOptions
}

// NewMenuHandler 创建菜单处理器
func NewMenuHandler(client *backend.Client, sessions *session.Manager, tree TreeOptions, log logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		upstream: upstream{client: client, sessions: sessions, log: log},
		tree:     tree,
	}
}

// List 菜单树
// @Summary 菜单树
// @Description 后端扁平菜单列表按 parentId 组装为有序森林，同级保持后端返回顺序
// @Tags 菜单
// @Produce json
// @Success 200 {object} Response "菜单树"
// @Failure 401 {object} Response "未登录或登录已过期"
// @Failure 403 {object} Response "没有访问权限"
// @Router /console/menus [get]
func (h *MenuHandler) List(c *gin.Context) {
	menus, err := h.client.Menus(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "获取菜单失败")
		return
	}
	Success(c, menuForest(menus, h.tree))
}

// Navigation 当前用户可见的菜单树
// @Summary 导航菜单树
// @Description 菜单树按当前用户能力过滤：超管返回完整树，普通用户只保留权限集合中的节点，不可访问节点连同子树省略
// @Tags 菜单
// @Produce json
// @Success 200 {object} Response "导航树"
// @Failure 401 {object} Response "未登录或登录已过期"
// @Router /console/navigation [get]
func (h *MenuHandler) Navigation(c *gin.Context) {
	menus, err := h.client.Menus(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "获取菜单失败")
		return
	}
	Success(c, access.FilterTree(middleware.CurrentCapability(c), menuForest(menus, h.tree)))
}

// Parents 可选父级菜单；exclude 指定时排除该菜单及其子孙，避免形成环
// @Summary 父级菜单候选
// @Tags 菜单
// @Produce json
// @Param exclude query int false "排除的菜单 ID"
// @Success 200 {object} Response{data=[]models.Menu} "父级菜单"
// @Router /console/menus/parents [get]
func (h *MenuHandler) Parents(c *gin.Context) {
	ctx := c.Request.Context()
	tok := middleware.Token(c)
	parents, err := h.client.ParentMenus(ctx, tok)
	if err != nil {
		h.fail(c, err, "获取父级菜单失败")
		return
	}

	raw := c.Query("exclude")
	if raw == "" {
		Success(c, parents)
		return
	}
	exclude, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		BadRequest(c, "无效的菜单ID")
		return
	}
	all, err := h.client.Menus(ctx, tok)
	if err != nil {
		h.fail(c, err, "获取菜单失败")
		return
	}
	blocked := menutree.Descendants(all, exclude)
	blocked[exclude] = true
	out := make([]models.Menu, 0, len(parents))
	for _, p := range parents {
		if !blocked[p.ID] {
			out = append(out, p)
		}
	}
	Success(c, out)
}

// Create 创建菜单
// @Summary 创建菜单
// @Tags 菜单
// @Accept json
// @Produce json
// @Param request body models.MenuCreateRequest true "菜单"
// @Success 200 {object} Response{data=models.Menu} "创建成功"
// @Failure 400 {object} Response "参数错误或父级菜单不存在"
// @Router /console/menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req models.MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	ctx := c.Request.Context()
	tok := middleware.Token(c)

	if req.ParentID != nil && *req.ParentID != 0 {
		menus, err := h.client.Menus(ctx, tok)
		if err != nil {
			h.fail(c, err, "获取菜单失败")
			return
		}
		found := false
		for _, m := range menus {
			if m.ID == *req.ParentID {
				found = true
				break
			}
		}
		if !found {
			BadRequest(c, "父级菜单不存在")
			return
		}
	}

	menu, err := h.client.CreateMenu(ctx, tok, req)
	if err != nil {
		h.fail(c, err, "创建失败")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "创建成功", Data: menu})
}
