package api

import (
	"encoding/json"
	"net/http"

	"ledgerconsole/backend"
	"ledgerconsole/middleware"
	"ledgerconsole/models"
	"ledgerconsole/sequence"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ResourceHandler 通用资源 CRUD（用户、产品、采购单等）
type ResourceHandler struct {
	upstream
	tracker *sequence.Tracker
	onStale func()
}

// NewResourceHandler 创建资源处理器；onStale 在丢弃过期响应时回调
func NewResourceHandler(client *backend.Client, sessions *session.Manager, tracker *sequence.Tracker, onStale func(), log logrus.FieldLogger) *ResourceHandler {
	if onStale == nil {
		onStale = func() {}
	}
	return &ResourceHandler{
		upstream: upstream{client: client, sessions: sessions, log: log},
		tracker:  tracker,
		onStale:  onStale,
	}
}

// List 分页列表；同一会话对同一资源的新请求会取消旧请求，旧请求返回 409
// @Summary 资源分页列表
// @Tags 资源
// @Produce json
// @Param resource path string true "资源名" Enums(users, categories, models, products, purchases, vendors, locations, vouchers)
// @Param page query int false "页码，从 0 开始"
// @Param size query int false "每页条数，默认 10"
// @Success 200 {object} Response "分页数据"
// @Failure 409 {object} Response "请求已被新的请求取代"
// @Router /console/r/{resource} [get]
func (h *ResourceHandler) List(c *gin.Context) {
	res, _ := middleware.CurrentResource(c)
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, SafeErrorMessage(err, "分页参数错误"))
		return
	}

	ctx, ticket := h.tracker.Begin(c.Request.Context(), middleware.SessionID(c)+":"+res.Name)
	defer ticket.Done()

	page, err := h.client.List(ctx, middleware.Token(c), res, q)
	if !ticket.Latest() {
		h.onStale()
		Error(c, http.StatusConflict, "请求已被新的请求取代")
		return
	}
	if err != nil {
		h.fail(c, err, "获取列表失败")
		return
	}
	Success(c, gin.H{
		"content":    page.Content,
		"page":       page.Number(),
		"size":       page.PageSize,
		"totalPages": page.TotalPages,
		"total":      page.TotalElements,
	})
}

// Detail 详情
// @Summary 资源详情
// @Tags 资源
// @Produce json
// @Param resource path string true "资源名"
// @Param id path string true "ID"
// @Success 200 {object} Response "详情"
// @Router /console/r/{resource}/{id} [get]
func (h *ResourceHandler) Detail(c *gin.Context) {
	res, _ := middleware.CurrentResource(c)
	data, err := h.client.Detail(c.Request.Context(), middleware.Token(c), res, c.Param("id"))
	if err != nil {
		h.fail(c, err, "获取详情失败")
		return
	}
	Success(c, data)
}

// Create 创建
// @Summary 创建资源
// @Tags 资源
// @Accept json
// @Produce json
// @Param resource path string true "资源名"
// @Success 200 {object} Response "创建成功"
// @Router /console/r/{resource} [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	res, _ := middleware.CurrentResource(c)
	body, ok := readJSONBody(c)
	if !ok {
		return
	}
	data, err := h.client.Create(c.Request.Context(), middleware.Token(c), res, body)
	if err != nil {
		h.fail(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", data)
}

// Update 更新
// @Summary 更新资源
// @Tags 资源
// @Accept json
// @Produce json
// @Param resource path string true "资源名"
// @Param id path string true "ID"
// @Success 200 {object} Response "更新成功"
// @Router /console/r/{resource}/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	res, _ := middleware.CurrentResource(c)
	body, ok := readJSONBody(c)
	if !ok {
		return
	}
	data, err := h.client.Update(c.Request.Context(), middleware.Token(c), res, c.Param("id"), body)
	if err != nil {
		h.fail(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", data)
}

// Delete 删除
// @Summary 删除资源
// @Tags 资源
// @Produce json
// @Param resource path string true "资源名"
// @Param id path string true "ID"
// @Success 200 {object} Response "删除成功"
// @Router /console/r/{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	res, _ := middleware.CurrentResource(c)
	if err := h.client.Delete(c.Request.Context(), middleware.Token(c), res, c.Param("id")); err != nil {
		h.fail(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

func readJSONBody(c *gin.Context) (json.RawMessage, bool) {
	raw, err := c.GetRawData()
	if err != nil || !json.Valid(raw) {
		BadRequest(c, "请求体必须为 JSON")
		return nil, false
	}
	return raw, true
}
