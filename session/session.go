// Package session 是会话状态的唯一入口：登录写入、登出/过期清除，其余只读。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ledgerconsole/models"
)

// 会话键，与原浏览器 localStorage 键名一致
const (
	KeyToken       = "token"
	KeyTokenExpiry = "tokenExpiry" // 毫秒时间戳字符串
	KeyAuthUser    = "authUser"
	KeyRoles       = "roles"
	KeyIsAdmin     = "isAdmin" // "true" / "false"
)

// Keys 全部会话键，Clear 后这些键都不存在
var Keys = []string{KeyToken, KeyTokenExpiry, KeyAuthUser, KeyRoles, KeyIsAdmin}

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session: not found")

// Record 原始键值
type Record map[string]string

// Store 会话存储
type Store interface {
	Get(ctx context.Context, id string) (Record, error)
	Set(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Clear(ctx context.Context, id string) error
}

// Session 解析后的会话
type Session struct {
	Token   string
	Expiry  time.Time // 零值表示缺失
	User    *models.User
	Roles   *models.Role
	IsAdmin bool
}

// HasToken token 是否存在
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// HasExpiry 过期时间是否存在
func (s *Session) HasExpiry() bool {
	return s != nil && !s.Expiry.IsZero()
}

// Permissions 用户可访问的路由集合（角色菜单的 url）
func (s *Session) Permissions() []string {
	if s == nil {
		return nil
	}
	return s.Roles.Routes()
}

// Record 序列化为五个键
func (s *Session) Record() (Record, error) {
	rec := Record{
		KeyToken:   s.Token,
		KeyIsAdmin: strconv.FormatBool(s.IsAdmin),
	}
	if !s.Expiry.IsZero() {
		rec[KeyTokenExpiry] = strconv.FormatInt(s.Expiry.UnixMilli(), 10)
	} else {
		rec[KeyTokenExpiry] = ""
	}
	user, err := json.Marshal(s.User)
	if err != nil {
		return nil, fmt.Errorf("session: encode authUser: %w", err)
	}
	rec[KeyAuthUser] = string(user)
	roles, err := json.Marshal(s.Roles)
	if err != nil {
		return nil, fmt.Errorf("session: encode roles: %w", err)
	}
	rec[KeyRoles] = string(roles)
	return rec, nil
}

// Parse 从键值解析会话；缺失或无法解析的字段保持零值，由守卫判定
func Parse(rec Record) *Session {
	s := &Session{Token: rec[KeyToken], IsAdmin: rec[KeyIsAdmin] == "true"}
	if v := rec[KeyTokenExpiry]; v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			s.Expiry = time.UnixMilli(ms)
		}
	}
	if v := rec[KeyAuthUser]; v != "" && v != "null" {
		var u models.User
		if json.Unmarshal([]byte(v), &u) == nil {
			s.User = &u
		}
	}
	if v := rec[KeyRoles]; v != "" && v != "null" {
		var r models.Role
		if json.Unmarshal([]byte(v), &r) == nil {
			s.Roles = &r
		}
	}
	return s
}

// Load 读取并解析会话
func Load(ctx context.Context, store Store, id string) (*Session, error) {
	rec, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Parse(rec), nil
}

// Save 写入会话
func Save(ctx context.Context, store Store, id string, s *Session, ttl time.Duration) error {
	rec, err := s.Record()
	if err != nil {
		return err
	}
	return store.Set(ctx, id, rec, ttl)
}
