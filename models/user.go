package models

// User 后端返回的登录用户信息（会话中以 JSON 保存为 authUser）
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	Role       *Role  `json:"role,omitempty"`
	CheckAdmin bool   `json:"checkAdmin"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 后端登录响应：{token, status, message, data}
type LoginResponse struct {
	Token   string `json:"token"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    User   `json:"data"`
}

// UserCreateRequest 新增用户请求（/users/addUser）
type UserCreateRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	RoleID   int64  `json:"roleId" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}
