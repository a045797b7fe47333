// Package access 根据会话中的角色菜单判断可见性与路由权限
package access

import (
	"strings"

	"ledgerconsole/config"
	"ledgerconsole/menutree"
	"ledgerconsole/models"
	"ledgerconsole/session"
)

// Capability 用户能力
type Capability interface {
	CanAccess(route string) bool
	IsAdmin() bool
}

// Admin 超管，全部可见
type Admin struct{}

// CanAccess 超管总是允许
func (Admin) CanAccess(string) bool { return true }

// IsAdmin 实现 Capability
func (Admin) IsAdmin() bool { return true }

// StandardUser 普通用户，只能访问权限集合中的路由
type StandardUser struct {
	routes   map[string]bool
	patterns []string
}

// NewStandardUser 由权限字符串创建普通用户
func NewStandardUser(permissions []string) StandardUser {
	u := StandardUser{routes: make(map[string]bool, len(permissions))}
	for _, p := range permissions {
		p = normalize(p)
		if p == "" {
			continue
		}
		u.routes[p] = true
		if strings.Contains(p, ":") {
			u.patterns = append(u.patterns, p)
		}
	}
	return u
}

// CanAccess 精确匹配权限字符串，或匹配带 :param 的权限
func (u StandardUser) CanAccess(route string) bool {
	route = normalize(route)
	if route == "" {
		return false
	}
	if u.routes[route] {
		return true
	}
	for _, p := range u.patterns {
		if MatchRoute(p, route) {
			return true
		}
	}
	return false
}

// IsAdmin 实现 Capability
func (StandardUser) IsAdmin() bool { return false }

// Routes 权限集合（测试、会话接口输出）
func (u StandardUser) Routes() []string {
	out := make([]string, 0, len(u.routes))
	for r := range u.routes {
		out = append(out, r)
	}
	return out
}

// FromSession 每次请求由会话推导能力，不访问后端
func FromSession(s *session.Session) Capability {
	if s == nil {
		return NewStandardUser(nil)
	}
	if s.IsAdmin {
		return Admin{}
	}
	return NewStandardUser(s.Permissions())
}

// FilterItems 过滤侧边栏子菜单；普通用户只保留权限集合中的项，结果恰为两者交集
func FilterItems(c Capability, items []config.SidebarItem) []config.SidebarItem {
	out := make([]config.SidebarItem, 0, len(items))
	for _, it := range items {
		if c.IsAdmin() || c.CanAccess(it.Permission) {
			out = append(out, it)
		}
	}
	return out
}

// FilterGroups 逐组过滤；子菜单全部不可见的分组整体省略
func FilterGroups(c Capability, groups []config.SidebarGroup) []config.SidebarGroup {
	out := make([]config.SidebarGroup, 0, len(groups))
	for _, g := range groups {
		if c.IsAdmin() {
			out = append(out, g)
			continue
		}
		if g.Permission != "" && !c.CanAccess(g.Permission) {
			continue
		}
		items := FilterItems(c, g.Items)
		if len(g.Items) > 0 && len(items) == 0 {
			continue
		}
		g.Items = items
		out = append(out, g)
	}
	return out
}

// FilterTree 过滤菜单树：不可访问的节点及其子树被省略
// 返回新树，输入不变
func FilterTree(c Capability, nodes []*menutree.Node[models.Menu]) []*menutree.Node[models.Menu] {
	out := make([]*menutree.Node[models.Menu], 0, len(nodes))
	for _, n := range nodes {
		if !c.IsAdmin() && !c.CanAccess(n.Entry.URL) {
			continue
		}
		out = append(out, &menutree.Node[models.Menu]{
			Entry:    n.Entry,
			Children: FilterTree(c, n.Children),
		})
	}
	return out
}

// MatchRoute 检查路由是否匹配 pattern，:param 匹配单个非空段
// users/123 匹配 users/:id
func MatchRoute(pattern, route string) bool {
	p := splitPath(pattern)
	a := splitPath(route)
	if len(a) != len(p) {
		return false
	}
	for i := range a {
		if len(p[i]) > 0 && p[i][0] == ':' {
			if a[i] == "" {
				return false
			}
			continue
		}
		if a[i] != p[i] {
			return false
		}
	}
	return true
}

func normalize(route string) string {
	return strings.Trim(strings.TrimSpace(route), "/")
}

func splitPath(s string) []string {
	s = normalize(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
