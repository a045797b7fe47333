// Package docs 控制台 API 文档（swag 格式）
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "调用后端登录，成功后写入会话并下发 console_sid cookie",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "用户登录",
                "parameters": [
                    {
                        "description": "登录信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "登录成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "用户名或密码错误", "schema": {"$ref": "#/definitions/api.Response"}},
                    "429": {"description": "尝试过于频繁", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "退出登录",
                "responses": {
                    "200": {"description": "已退出", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["控制台"],
                "summary": "当前会话",
                "responses": {
                    "200": {"description": "会话信息", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "未登录或登录已过期", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/sidebar": {
            "get": {
                "description": "超管返回全部分组；普通用户只返回权限集合中的子菜单",
                "produces": ["application/json"],
                "tags": ["控制台"],
                "summary": "侧边栏",
                "responses": {
                    "200": {"description": "侧边栏", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/menus": {
            "get": {
                "produces": ["application/json"],
                "tags": ["菜单"],
                "summary": "菜单树",
                "responses": {
                    "200": {"description": "菜单树", "schema": {"$ref": "#/definitions/api.Response"}},
                    "403": {"description": "没有访问权限", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["菜单"],
                "summary": "创建菜单",
                "parameters": [
                    {
                        "description": "菜单",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.MenuCreateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "参数错误或父级菜单不存在", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/navigation": {
            "get": {
                "description": "菜单树按当前用户能力过滤：超管返回完整树，普通用户只保留权限集合中的节点，不可访问节点连同子树省略",
                "produces": ["application/json"],
                "tags": ["菜单"],
                "summary": "导航菜单树",
                "responses": {
                    "200": {"description": "导航树", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "未登录或登录已过期", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/menus/parents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["菜单"],
                "summary": "父级菜单候选",
                "parameters": [
                    {"type": "integer", "description": "排除的菜单 ID", "name": "exclude", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "父级菜单", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/roles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["角色"],
                "summary": "角色列表",
                "responses": {
                    "200": {"description": "角色列表", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["角色"],
                "summary": "创建角色",
                "parameters": [
                    {
                        "description": "角色",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.RoleCreateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/roles/{name}/menus": {
            "get": {
                "produces": ["application/json"],
                "tags": ["角色"],
                "summary": "角色菜单",
                "parameters": [
                    {"type": "string", "description": "角色名", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "角色菜单", "schema": {"$ref": "#/definitions/api.Response"}},
                    "403": {"description": "没有访问权限", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/coa/tree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["会计科目"],
                "summary": "会计科目树",
                "responses": {
                    "200": {"description": "科目树", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/coa": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["会计科目"],
                "summary": "创建会计科目",
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/coa/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["会计科目"],
                "summary": "导出会计科目",
                "responses": {
                    "200": {"description": "Excel 文件", "schema": {"type": "file"}}
                }
            }
        },
        "/console/r/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["资源"],
                "summary": "资源分页列表",
                "parameters": [
                    {"type": "string", "description": "资源名", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "页码，从 0 开始", "name": "page", "in": "query"},
                    {"type": "integer", "description": "每页条数，默认 10", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "分页数据", "schema": {"$ref": "#/definitions/api.Response"}},
                    "409": {"description": "请求已被新的请求取代", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["资源"],
                "summary": "创建资源",
                "parameters": [
                    {"type": "string", "description": "资源名", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "创建成功", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/console/r/{resource}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["资源"],
                "summary": "资源详情",
                "parameters": [
                    {"type": "string", "description": "资源名", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "详情", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["资源"],
                "summary": "更新资源",
                "parameters": [
                    {"type": "string", "description": "资源名", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["资源"],
                "summary": "删除资源",
                "parameters": [
                    {"type": "string", "description": "资源名", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        }
    },
    "definitions": {
        "api.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "redirect": {"type": "string"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.MenuCreateRequest": {
            "type": "object",
            "required": ["name", "url"],
            "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"},
                "parentId": {"type": "integer"}
            }
        },
        "models.RoleCreateRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "menuIds": {"type": "array", "items": {"type": "integer"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "财务进销存管理控制台 API",
	Description:      "会计与进销存后台控制台：会话、菜单权限树、侧边栏、会计科目与业务资源代理",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
