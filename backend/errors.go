package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTokenExpiring token 将在刷新窗口内过期，请求未发送
var ErrTokenExpiring = errors.New("backend: token expires within refresh window")

// ErrUnknownResource 未注册的资源
var ErrUnknownResource = errors.New("backend: unknown resource")

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// ValidationError 请求体未通过校验，未发送
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "backend: invalid payload: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsForbidden 后端返回 403
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsUnauthorized 后端返回 401，或 token 即将过期
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrTokenExpiring) || statusOf(err) == http.StatusUnauthorized
}

// IsNotFound 后端返回 404
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsValidation 请求体校验失败
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
