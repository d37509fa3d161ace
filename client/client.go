package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/motemen/go-loghttp"
	"github.com/penwyp/travisify/internal/config"
	"github.com/penwyp/travisify/internal/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// HookName 由 travisify 管理的 hook 名称，每个仓库至多一个
	HookName = "travis"
	// DefaultUserAgent 所有请求携带的 User-Agent
	DefaultUserAgent = "travisify"
)

// Hook 对应 GitHub hooks API 返回的 hook 对象，只读取用到的字段。
type Hook struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AddResult 描述 AddHook 的结果。
// Existing 为 true 时表示仓库已有 travis hook，没有发出创建请求。
type AddResult struct {
	Hook     *Hook
	Existing bool
}

// Client 负责与 GitHub hooks API 交互。
// 凭据直接编码进请求 URI 的 userinfo 部分；所有请求都不重试。
//
// 所有公共方法都接受 context.Context，超时与取消由调用方控制。
type Client struct {
	apiURL     string
	username   string // userinfo 用户名：token 或 user
	password   string // userinfo 密码：x-oauth-basic 或 pass
	hookUser   string // 写入 hook config 的 user
	hookToken  string // 写入 hook config 的 token
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient 注入自定义 http.Client，用于测试
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger 设置结构化日志记录器；debug 级别时会记录每个请求
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent 覆盖默认的 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a hooks client from the loaded credentials.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	username, password := cfg.Credentials()

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultAPIURL
	}

	c := &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		username:   username,
		password:   password,
		hookUser:   cfg.User,
		hookToken:  cfg.Token,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	if c.logger.Core().Enabled(zapcore.DebugLevel) {
		c.httpClient = c.withRequestLogging(c.httpClient)
	}

	return c
}

// withRequestLogging 包装 transport，记录请求方法、脱敏后的 URL 与状态码
func (c *Client) withRequestLogging(hc *http.Client) *http.Client {
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	wrapped := *hc
	wrapped.Transport = &loghttp.Transport{
		Transport: base,
		LogRequest: func(req *http.Request) {
			c.logger.Debug("API Request",
				zap.String("method", req.Method),
				zap.String("url", req.URL.Redacted()))
		},
		LogResponse: func(resp *http.Response) {
			c.logger.Debug("API Response",
				zap.String("method", resp.Request.Method),
				zap.String("url", resp.Request.URL.Redacted()),
				zap.Int("status_code", resp.StatusCode))
		},
	}
	return &wrapped
}

// HooksURL 返回带 userinfo 的 hooks 集合地址: <api>/repos/<repo>/hooks
func (c *Client) HooksURL(repo string) string {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		u = &url.URL{Scheme: "https", Host: "api.github.com"}
	}
	u.User = url.UserPassword(c.username, c.password)
	u.Path = strings.TrimRight(u.Path, "/") + "/repos/" + repo + "/hooks"
	return u.String()
}

// GetHook 列出 uri 下的 hooks 并返回第一个名为 travis 的记录，不存在时返回 nil。
func (c *Client) GetHook(ctx context.Context, uri string) (*Hook, error) {
	status, body, err := c.do(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, statusError(status, body)
	}

	// null 也不是数组
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil || records == nil {
		return nil, errors.Newf(errors.ErrTypeMalformed, "non-array response: %s", strings.TrimSpace(string(body)))
	}

	for _, raw := range records {
		var h Hook
		if err := json.Unmarshal(raw, &h); err != nil {
			continue
		}
		if h.Name == HookName {
			return &h, nil
		}
	}

	return nil, nil
}

// AddHook 为 repo 创建 travis hook。已存在时不发出创建请求。
func (c *Client) AddHook(ctx context.Context, repo string) (*AddResult, error) {
	uri := c.HooksURL(repo)

	existing, err := c.GetHook(ctx, uri)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		c.logger.Debug("Hook already present", zap.String("repo", repo), zap.Int64("id", existing.ID))
		return &AddResult{Hook: existing, Existing: true}, nil
	}

	hookConfig := map[string]any{"domain": ""}
	if c.hookToken != "" {
		hookConfig["token"] = c.hookToken
	}
	if c.hookUser != "" {
		hookConfig["user"] = c.hookUser
	}

	status, body, err := c.do(ctx, http.MethodPost, uri, map[string]any{
		"name":   HookName,
		"config": hookConfig,
	})
	if err != nil {
		return nil, err
	}

	var created Hook
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		return nil, statusError(status, body)
	}

	return &AddResult{Hook: &created}, nil
}

// TestHook 触发 repo 上 travis hook 的测试推送，返回被触发的 hook。
func (c *Client) TestHook(ctx context.Context, repo string) (*Hook, error) {
	uri := c.HooksURL(repo)

	h, err := c.GetHook(ctx, uri)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.New(errors.ErrTypeNoHook, "no hook for this project").
			WithSuggestion("run travisify without arguments to add one")
	}

	status, body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/test", uri, h.ID), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, statusError(status, body)
	}

	return h, nil
}

// do 发送请求并读取完整响应体
func (c *Client) do(ctx context.Context, method, uri string, payload any) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrTypeNetwork, "failed to create request", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrTypeNetwork, fmt.Sprintf("%s %s failed", method, req.URL.Redacted()), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrTypeNetwork, "failed to read response", err)
	}

	c.logger.Debug("API call finished",
		zap.String("method", method),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("response_size", len(body)))

	return resp.StatusCode, body, nil
}

func statusError(status int, body []byte) error {
	return errors.Newf(errors.ErrTypeStatus, "response code %d: %s", status, strings.TrimSpace(string(body)))
}
