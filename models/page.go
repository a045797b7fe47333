package models

// Page 后端分页响应
// 不同接口页码字段名不一致（pageNo / pageNumber），读取时用 Number()
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNo        *int  `json:"pageNo,omitempty"`
	PageNumber    *int  `json:"pageNumber,omitempty"`
	PageSize      int   `json:"pageSize"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements,omitempty"`
}

// Number 当前页码（从 0 开始）
func (p Page[T]) Number() int {
	if p.PageNo != nil {
		return *p.PageNo
	}
	if p.PageNumber != nil {
		return *p.PageNumber
	}
	return 0
}

// PageQuery 分页查询参数
type PageQuery struct {
	Page int `form:"page" json:"page" binding:"omitempty,min=0"`
	Size int `form:"size" json:"size" binding:"omitempty,min=1,max=200"`
}

// Normalize 补齐默认值：page=0, size=10
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = 10
	}
	return q
}
