// Package token 解码后端签发的 JWT
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmpty token 为空
var ErrEmpty = errors.New("token: empty")

// ErrNoExpiry token 缺少 exp
var ErrNoExpiry = errors.New("token: missing exp claim")

// Claims 控制台关心的声明
type Claims struct {
	jwt.RegisteredClaims
}

// Decoder 解码 token；Secret 为空时只解析不验签
type Decoder struct {
	secret []byte
	parser *jwt.Parser
}

// NewDecoder 创建解码器
func NewDecoder(secret string) *Decoder {
	return &Decoder{
		secret: []byte(secret),
		// 有效期由会话中的 tokenExpiry 判定，这里只负责解码
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// Verifying 是否校验签名
func (d *Decoder) Verifying() bool {
	return len(d.secret) > 0
}

// Decode 解码 token
func (d *Decoder) Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrEmpty
	}
	claims := &Claims{}
	if !d.Verifying() {
		if _, _, err := d.parser.ParseUnverified(raw, claims); err != nil {
			return nil, fmt.Errorf("token: decode: %w", err)
		}
		return claims, nil
	}
	_, err := d.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return d.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token: decode: %w", err)
	}
	return claims, nil
}

// Expiry 读取 token 的 exp
func (d *Decoder) Expiry(raw string) (time.Time, error) {
	claims, err := d.Decode(raw)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiringWithin token 是否在 window 内过期（已过期也算）
func (d *Decoder) ExpiringWithin(raw string, now time.Time, window time.Duration) bool {
	exp, err := d.Expiry(raw)
	if err != nil {
		return true
	}
	return !exp.After(now.Add(window))
}
