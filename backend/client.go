// Package backend 上游 REST 后端客户端
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ledgerconsole/token"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Options 客户端参数
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RefreshWindow time.Duration
	Decoder       *token.Decoder
	Logger        logrus.FieldLogger
	// Observe 每次请求结束后回调，status 为 0 表示未收到响应
	Observe func(method, endpoint string, status int, d time.Duration)
}

// Client 后端客户端，无自动重试
type Client struct {
	baseURL  string
	http     *http.Client
	decoder  *token.Decoder
	window   time.Duration
	now      func() time.Time
	validate *validator.Validate
	group    singleflight.Group
	log      logrus.FieldLogger
	observe  func(method, endpoint string, status int, d time.Duration)
}

// New 创建客户端
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RefreshWindow <= 0 {
		opts.RefreshWindow = 5 * time.Minute
	}
	if opts.Decoder == nil {
		opts.Decoder = token.NewDecoder("")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	v := validator.New()
	// 与 gin 绑定共用 binding 标签
	v.SetTagName("binding")
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     &http.Client{Timeout: opts.Timeout},
		decoder:  opts.Decoder,
		window:   opts.RefreshWindow,
		now:      time.Now,
		validate: v,
		log:      opts.Logger,
		observe:  opts.Observe,
	}
}

type request struct {
	method   string
	path     string
	endpoint string // 指标标签，路径模板
	token    string
	query    url.Values
	body     interface{}
}

// Validate 按 binding 标签校验请求体
func (c *Client) Validate(payload interface{}) error {
	if payload == nil {
		return nil
	}
	if err := c.validate.Struct(payload); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	if req.endpoint == "" {
		req.endpoint = req.path
	}
	if req.token != "" && c.decoder.ExpiringWithin(req.token, c.now(), c.window) {
		return ErrTokenExpiring
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("backend: encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.record(req, 0, start)
		return fmt.Errorf("backend: %s %s: %w", req.method, req.endpoint, err)
	}
	defer resp.Body.Close()
	c.record(req, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", req.endpoint, err)
	}
	return nil
}

func (c *Client) record(req request, status int, start time.Time) {
	d := time.Since(start)
	if c.observe != nil {
		c.observe(req.method, req.endpoint, status, d)
	}
	c.log.WithFields(logrus.Fields{
		"method":   req.method,
		"endpoint": req.endpoint,
		"status":   status,
		"latency":  d,
	}).Debug("backend request")
}

// maxErrorRunes 非 JSON 错误体保留的最大字符数
const maxErrorRunes = 200

// errorMessage 提取后端错误体中的 message 字段
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	msg := strings.TrimSpace(string(raw))
	// 按字符截断，避免切断多字节中文
	if r := []rune(msg); len(r) > maxErrorRunes {
		msg = string(r[:maxErrorRunes])
	}
	return msg
}
