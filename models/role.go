package models

// Role 角色，Menus 为角色被授权的菜单
type Role struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	MenuIDs []int64 `json:"menuIds,omitempty"`
	Menus   []Menu  `json:"menus,omitempty"`
}

// Routes 返回角色授权的路由集合（菜单 url）
func (r *Role) Routes() []string {
	if r == nil {
		return nil
	}
	routes := make([]string, 0, len(r.Menus))
	for _, m := range r.Menus {
		if m.URL != "" {
			routes = append(routes, m.URL)
		}
	}
	return routes
}

// RoleCreateRequest 创建角色请求
type RoleCreateRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=50"`
	MenuIDs []int64 `json:"menuIds"`
}
