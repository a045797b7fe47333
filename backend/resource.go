package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"ledgerconsole/models"
)

// Resource 后端 CRUD 资源
type Resource struct {
	Name       string
	ListPath   string
	CreatePath string
	ItemPath   string // 详情/更新/删除前缀，后接 /{id}
	Paginated  bool   // 列表返回 Page 结构
	// Form 返回用于校验创建/更新请求体的零值
	Form func() interface{}
}

// Permission 列表/详情/更新/删除所需权限
func (r Resource) Permission() string {
	return r.Name
}

// CreatePermission 创建所需权限
func (r Resource) CreatePermission() string {
	return r.Name + "/create"
}

var resources = map[string]Resource{
	"users": {
		Name: "users", ListPath: "/users/list", CreatePath: "/users/addUser", ItemPath: "/users", Paginated: true,
		Form: func() interface{} { return &models.UserCreateRequest{} },
	},
	"categories": {
		Name: "categories", ListPath: "/categories/list", CreatePath: "/categories", ItemPath: "/categories", Paginated: true,
		Form: func() interface{} { return &models.Category{} },
	},
	"models": {
		Name: "models", ListPath: "/models/list", CreatePath: "/models/create", ItemPath: "/models", Paginated: true,
		Form: func() interface{} { return &models.ProductModel{} },
	},
	"products": {
		Name: "products", ListPath: "/products", CreatePath: "/products", ItemPath: "/products", Paginated: true,
		Form: func() interface{} { return &models.Product{} },
	},
	"purchases": {
		Name: "purchases", ListPath: "/purchases/list", CreatePath: "/purchases", ItemPath: "/purchases", Paginated: true,
		Form: func() interface{} { return &models.Purchase{} },
	},
	"vendors": {
		Name: "vendors", ListPath: "/vendors", CreatePath: "/vendors/create", ItemPath: "/vendors", Paginated: true,
		Form: func() interface{} { return &models.Vendor{} },
	},
	"locations": {
		Name: "locations", ListPath: "/locations", CreatePath: "/locations", ItemPath: "/locations",
		Form: func() interface{} { return &models.Location{} },
	},
	"vouchers": {
		Name: "vouchers", ListPath: "/vouchers", CreatePath: "/vouchers", ItemPath: "/vouchers", Paginated: true,
		Form: func() interface{} { return &models.Voucher{} },
	},
}

// LookupResource 按名称查找资源
func LookupResource(name string) (Resource, bool) {
	r, ok := resources[name]
	return r, ok
}

// ResourceNames 已注册资源名（有序）
func ResourceNames() []string {
	names := make([]string, 0, len(resources))
	for n := range resources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// List 分页列表，非分页资源包装为单页
func (c *Client) List(ctx context.Context, tok string, res Resource, q models.PageQuery) (*models.Page[json.RawMessage], error) {
	q = q.Normalize()
	req := request{method: http.MethodGet, path: res.ListPath, token: tok}
	if !res.Paginated {
		var items []json.RawMessage
		if err := c.do(ctx, req, &items); err != nil {
			return nil, err
		}
		zero := 0
		return &models.Page[json.RawMessage]{
			Content:       items,
			PageNo:        &zero,
			PageSize:      len(items),
			TotalPages:    1,
			TotalElements: int64(len(items)),
		}, nil
	}
	req.query = url.Values{
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.Size)},
	}
	var page models.Page[json.RawMessage]
	if err := c.do(ctx, req, &page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []json.RawMessage{}
	}
	return &page, nil
}

// Detail GET {item}/{id}
func (c *Client) Detail(ctx context.Context, tok string, res Resource, id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     res.ItemPath + "/" + url.PathEscape(id),
		endpoint: res.ItemPath + "/{id}",
		token:    tok,
	}, &out)
	return out, err
}

// Create POST 创建，先按资源表单校验
func (c *Client) Create(ctx context.Context, tok string, res Resource, body json.RawMessage) (json.RawMessage, error) {
	if err := c.checkForm(res, body); err != nil {
		return nil, err
	}
	var out json.RawMessage
	err := c.do(ctx, request{method: http.MethodPost, path: res.CreatePath, token: tok, body: body}, &out)
	return out, err
}

// Update PUT {item}/{id}
func (c *Client) Update(ctx context.Context, tok string, res Resource, id string, body json.RawMessage) (json.RawMessage, error) {
	if err := c.checkForm(res, body); err != nil {
		return nil, err
	}
	var out json.RawMessage
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     res.ItemPath + "/" + url.PathEscape(id),
		endpoint: res.ItemPath + "/{id}",
		token:    tok,
		body:     body,
	}, &out)
	return out, err
}

// Delete DELETE {item}/{id}
func (c *Client) Delete(ctx context.Context, tok string, res Resource, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     res.ItemPath + "/" + url.PathEscape(id),
		endpoint: res.ItemPath + "/{id}",
		token:    tok,
	}, nil)
}

func (c *Client) checkForm(res Resource, body json.RawMessage) error {
	if res.Form == nil {
		return nil
	}
	form := res.Form()
	if err := json.Unmarshal(body, form); err != nil {
		return &ValidationError{Err: fmt.Errorf("decode %s: %w", res.Name, err)}
	}
	return c.Validate(form)
}
