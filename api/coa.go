package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ledgerconsole/backend"
	"ledgerconsole/menutree"
	"ledgerconsole/middleware"
	"ledgerconsole/models"
	"ledgerconsole/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// CoaHandler 会计科目
type CoaHandler struct {
	upstream
	tree TreeOptions
	now  func() time.Time
}

// NewCoaHandler 创建会计科目处理器
func NewCoaHandler(client *backend.Client, sessions *session.Manager, tree TreeOptions, log logrus.FieldLogger) *CoaHandler {
	return &CoaHandler{
		upstream: upstream{client: client, sessions: sessions, log: log},
		tree:     tree,
		now:      time.Now,
	}
}

// Tree 会计科目树
// @Summary 会计科目树
// @Tags 会计科目
// @Produce json
// @Success 200 {object} Response "科目树"
// @Router /console/coa/tree [get]
func (h *CoaHandler) Tree(c *gin.Context) {
	list, err := h.client.CoaList(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "获取会计科目失败")
		return
	}
	Success(c, coaForest(list, h.tree))
}

// Create 创建会计科目
// @Summary 创建会计科目
// @Tags 会计科目
// @Accept json
// @Produce json
// @Param request body models.Coa true "科目"
// @Success 200 {object} Response{data=models.Coa} "创建成功"
// @Router /console/coa [post]
func (h *CoaHandler) Create(c *gin.Context) {
	var req models.Coa
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	created, err := h.client.CreateCoa(c.Request.Context(), middleware.Token(c), req)
	if err != nil {
		h.fail(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", created)
}

// Export 导出会计科目树为 Excel，科目名称按层级缩进
// @Summary 导出会计科目
// @Tags 会计科目
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Router /console/coa/export [get]
func (h *CoaHandler) Export(c *gin.Context) {
	list, err := h.client.CoaList(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "获取会计科目失败")
		return
	}

	f, err := buildCoaWorkbook(menutree.Flatten(coaForest(list, h.tree)))
	if err != nil {
		h.log.WithError(err).Error("生成 Excel 失败")
		InternalError(c, "生成 Excel 失败")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("会计科目_%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.log.WithError(err).Error("写入 Excel 失败")
	}
}

const coaSheet = "会计科目"

func buildCoaWorkbook(rows []menutree.Flat[models.Coa]) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", coaSheet); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	groupStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{Border: border})

	f.SetColWidth(coaSheet, "A", "A", 10)
	f.SetColWidth(coaSheet, "B", "B", 40)
	f.SetColWidth(coaSheet, "C", "F", 16)

	headers := []string{"ID", "科目名称", "科目类型", "科目组", "组编码", "公司编码"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(coaSheet, cell, header)
		f.SetCellStyle(coaSheet, cell, cell, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		e := r.Entry
		f.SetCellValue(coaSheet, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(coaSheet, fmt.Sprintf("B%d", row), strings.Repeat("    ", r.Depth)+e.CoaName)
		f.SetCellValue(coaSheet, fmt.Sprintf("C%d", row), e.CoaType)
		f.SetCellValue(coaSheet, fmt.Sprintf("D%d", row), e.GroupName)
		f.SetCellValue(coaSheet, fmt.Sprintf("E%d", row), e.GroupCode)
		f.SetCellValue(coaSheet, fmt.Sprintf("F%d", row), e.CompanyCode)
		style := dataStyle
		if e.GroupHead() {
			style = groupStyle
		}
		f.SetCellStyle(coaSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
	}
	return f, nil
}
