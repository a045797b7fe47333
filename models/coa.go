package models

// Coa 会计科目（Chart of Accounts），ParentID 为 0 表示顶级
type Coa struct {
	ID          int64  `json:"id"`
	CoaName     string `json:"coaName" binding:"required"`
	CoaType     string `json:"coaType"`
	IsGroupHead int    `json:"isGroupHead"`
	KeyWord     string `json:"keyWord"`
	ParentID    int64  `json:"parentId"`
	SortBy      int    `json:"sortBy"`
	GroupName   string `json:"groupName"`
	GroupCode   string `json:"groupCode"`
	CompanyCode string `json:"companyCode"`
	IsSpecialGl int    `json:"isSpecialGl"`
	GcBk        string `json:"gcBk"`
}

// NodeID 实现 menutree.Entry
func (c Coa) NodeID() int64 {
	return c.ID
}

// ParentNodeID 实现 menutree.Entry
func (c Coa) ParentNodeID() int64 {
	return c.ParentID
}

// GroupHead 是否为科目组
func (c Coa) GroupHead() bool {
	return c.IsGroupHead != 0
}
