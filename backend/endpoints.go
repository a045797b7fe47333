package backend

import (
	"context"
	"net/http"
	"net/url"

	"ledgerconsole/models"
)

// Login POST /users/login，不携带 token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/users/login", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Menus GET /menus，同一 token 的并发请求合并为一次
func (c *Client) Menus(ctx context.Context, tok string) ([]models.Menu, error) {
	v, err, _ := c.group.Do("menus:"+tok, func() (interface{}, error) {
		var menus []models.Menu
		err := c.do(ctx, request{method: http.MethodGet, path: "/menus", token: tok}, &menus)
		return menus, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Menu), nil
}

// ParentMenus GET /menus/parents
func (c *Client) ParentMenus(ctx context.Context, tok string) ([]models.Menu, error) {
	var menus []models.Menu
	if err := c.do(ctx, request{method: http.MethodGet, path: "/menus/parents", token: tok}, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// CreateMenu POST /menus
func (c *Client) CreateMenu(ctx context.Context, tok string, req models.MenuCreateRequest) (*models.Menu, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	var menu models.Menu
	if err := c.do(ctx, request{method: http.MethodPost, path: "/menus", token: tok, body: req}, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// Roles GET /roles
func (c *Client) Roles(ctx context.Context, tok string) ([]models.Role, error) {
	var roles []models.Role
	if err := c.do(ctx, request{method: http.MethodGet, path: "/roles", token: tok}, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateRole POST /roles
func (c *Client) CreateRole(ctx context.Context, tok string, req models.RoleCreateRequest) (*models.Role, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	var role models.Role
	if err := c.do(ctx, request{method: http.MethodPost, path: "/roles", token: tok, body: req}, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleMenus GET /roles/{name}/menus
func (c *Client) RoleMenus(ctx context.Context, tok, name string) ([]models.Menu, error) {
	var menus []models.Menu
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/roles/" + url.PathEscape(name) + "/menus",
		endpoint: "/roles/{name}/menus",
		token:    tok,
	}, &menus)
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// CoaList GET /coa/list
func (c *Client) CoaList(ctx context.Context, tok string) ([]models.Coa, error) {
	var list []models.Coa
	if err := c.do(ctx, request{method: http.MethodGet, path: "/coa/list", token: tok}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCoa POST /coa/create
func (c *Client) CreateCoa(ctx context.Context, tok string, coa models.Coa) (*models.Coa, error) {
	if err := c.Validate(coa); err != nil {
		return nil, err
	}
	var created models.Coa
	if err := c.do(ctx, request{method: http.MethodPost, path: "/coa/create", token: tok, body: coa}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
