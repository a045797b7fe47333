package api

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"ledgerconsole/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sampleCoa = []models.Coa{
	{ID: 1, CoaName: "资产", CoaType: "ASSET", IsGroupHead: 1},
	{ID: 2, CoaName: "现金", CoaType: "ASSET", ParentID: 1, GroupName: "资产", GroupCode: "1000"},
	{ID: 3, CoaName: "负债", CoaType: "LIABILITY", IsGroupHead: 1},
	{ID: 4, CoaName: "失联科目", ParentID: 77},
}

func coaRouter(e *testEnv, h *CoaHandler) *gin.Engine {
	r, g := e.protected()
	g.GET("/coa/tree", h.Tree)
	g.GET("/coa/export", h.Export)
	g.POST("/coa", h.Create)
	return r
}

func coaBackend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coa/list":
			writeJSON(w, http.StatusOK, sampleCoa)
		case "/coa/create":
			writeJSON(w, http.StatusOK, models.Coa{ID: 9, CoaName: "银行存款", ParentID: 1})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestCoaHandler_Tree(t *testing.T) {
	e := newTestEnv(t, coaBackend(t))
	cookie := e.login(true)
	h := NewCoaHandler(e.client, e.sessions, e.tree, e.log)

	w := doRequest(coaRouter(e, h), http.MethodGet, "/console/coa/tree", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 3)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "资产", first["coaName"])
	assert.Len(t, first["children"], 1)
	last := data[2].(map[string]interface{})
	assert.Equal(t, float64(UnassignedID), last["id"])
	assert.Equal(t, UnassignedName, last["coaName"])
}

func TestCoaHandler_Create(t *testing.T) {
	e := newTestEnv(t, coaBackend(t))
	cookie := e.login(true)
	r := coaRouter(e, NewCoaHandler(e.client, e.sessions, e.tree, e.log))

	w := doRequest(r, http.MethodPost, "/console/coa", cookie, models.Coa{CoaName: "银行存款", ParentID: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(9), decode(t, w)["data"].(map[string]interface{})["id"])

	w = doRequest(r, http.MethodPost, "/console/coa", cookie, map[string]int{"parentId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoaHandler_Export(t *testing.T) {
	e := newTestEnv(t, coaBackend(t))
	cookie := e.login(true)
	h := NewCoaHandler(e.client, e.sessions, e.tree, e.log)
	h.now = func() time.Time { return time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local) }

	w := doRequest(coaRouter(e, h), http.MethodGet, "/console/coa/export", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "会计科目_20260309.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(coaSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "科目名称", rows[0][1])
	assert.Equal(t, "资产", rows[1][1])
	assert.Equal(t, "    现金", rows[2][1])
	assert.Equal(t, "负债", rows[3][1])
	assert.Equal(t, UnassignedName, rows[4][1])
	assert.Equal(t, "    失联科目", rows[5][1])
}

func TestCoaHandler_ExportBackendError(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})
	cookie := e.login(true)

	w := doRequest(coaRouter(e, NewCoaHandler(e.client, e.sessions, e.tree, e.log)), http.MethodGet, "/console/coa/export", cookie, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
