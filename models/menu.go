package models

// Menu 菜单（权限单元），由后端维护
// ParentID 为 nil 或 0 表示顶级
type Menu struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"` // 前端路由/权限标识，如 invoices、coa/create
	ParentID *int64 `json:"parentId"`
}

// NodeID 实现 menutree.Entry
func (m Menu) NodeID() int64 {
	return m.ID
}

// ParentNodeID 实现 menutree.Entry，nil 视为 0
func (m Menu) ParentNodeID() int64 {
	if m.ParentID == nil {
		return 0
	}
	return *m.ParentID
}

// MenuCreateRequest 创建菜单请求
type MenuCreateRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	URL      string `json:"url" binding:"required,min=1,max=100"`
	ParentID *int64 `json:"parentId"`
}
