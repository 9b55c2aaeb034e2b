package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"groupmate/backend/config"
)

var (
	// ErrNoToken 缺少访问令牌时在发起任何网络调用之前返回
	ErrNoToken = errors.New("缺少访问令牌，无法调用远程表存储")
	// ErrNothingInserted 插入响应中 inserted 为空
	ErrNothingInserted = errors.New("远程表存储未插入任何记录")
	// ErrEmptyUpdate 更新响应的三种形态均未携带记录
	ErrEmptyUpdate = errors.New("远程表存储更新未返回任何记录")
)

// RemoteError 远程表存储返回非 2xx 时的错误
type RemoteError struct {
	Table   string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("表 %s 请求失败: 状态码 %d", e.Table, e.Status)
	}
	return fmt.Sprintf("表 %s 请求失败: 状态码 %d: %s", e.Table, e.Status, e.Message)
}

// TokenProvider 提供访问远程表存储的 Bearer Token
// 由会话层或服务账号配置实现
type TokenProvider interface {
	Token() string
}

// StaticToken 固定 Token 的 TokenProvider（服务账号场景）
type StaticToken string

// Token 实现 TokenProvider
func (t StaticToken) Token() string { return string(t) }

// Client 远程数据表网关
// 对远程表存储服务的通用行级访问：按表名读取、批量插入、按主键更新。
// 主地址返回 404 时对备用地址重试一次；其他状态码与网络错误不重试。
type Client struct {
	httpClient  *http.Client
	baseURL     string
	fallbackURL string
	tokens      TokenProvider
	logger      *zap.Logger
}

// NewClient 创建网关客户端
func NewClient(cfg *config.GatewayConfig, tokens TokenProvider, logger *zap.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		fallbackURL: cfg.FallbackBaseURL,
		tokens:      tokens,
		logger:      logger,
	}
}

// InsertResult 批量插入响应
type InsertResult struct {
	Inserted []json.RawMessage `json:"inserted"`
	Skipped  []json.RawMessage `json:"skipped"`
}

// First 解析第一条插入成功的记录；inserted 为空视为插入失败
func (r *InsertResult) First(out interface{}) error {
	if len(r.Inserted) == 0 {
		return ErrNothingInserted
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(r.Inserted[0], out)
}

// Read 按字段等值过滤读取表中的行，并将 JSON 数组解码到 out
func (c *Client) Read(ctx context.Context, table string, filter map[string]string, out interface{}) error {
	query := url.Values{}
	for k, v := range filter {
		query.Set(k, v)
	}

	body, err := c.do(ctx, http.MethodGet, table, query.Encode(), nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Insert 批量插入记录。调用方必须检查 Inserted 非空才能视为成功
func (c *Client) Insert(ctx context.Context, table string, records interface{}) (*InsertResult, error) {
	payload := map[string]interface{}{"records": records}

	body, err := c.do(ctx, http.MethodPost, table, "", payload)
	if err != nil {
		return nil, err
	}

	var result InsertResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("解析插入响应失败: %w", err)
	}
	return &result, nil
}

// Update 按主键做部分字段更新
// 响应形态不固定：依次探测 updated 数组、data 对象、inserted 数组，
// 取第一个非空者；全部为空返回 ErrEmptyUpdate。
func (c *Client) Update(ctx context.Context, table, idColumn, idValue string, updates map[string]interface{}, out interface{}) error {
	payload := map[string]interface{}{
		"id_column": idColumn,
		"id_value":  idValue,
		"updates":   updates,
	}

	body, err := c.do(ctx, http.MethodPatch, table, "", payload)
	if err != nil {
		return err
	}

	var probe struct {
		Updated  []json.RawMessage `json:"updated"`
		Data     json.RawMessage   `json:"data"`
		Inserted []json.RawMessage `json:"inserted"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return fmt.Errorf("解析更新响应失败: %w", err)
	}

	var record json.RawMessage
	switch {
	case len(probe.Updated) > 0:
		record = probe.Updated[0]
	case len(probe.Data) > 0 && string(probe.Data) != "null":
		record = probe.Data
	case len(probe.Inserted) > 0:
		record = probe.Inserted[0]
	default:
		return ErrEmptyUpdate
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(record, out)
}

// do 执行一次网关请求；主地址 404 时对备用地址重试一次
func (c *Client) do(ctx context.Context, method, table, rawQuery string, payload interface{}) ([]byte, error) {
	token := c.tokens.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	body, status, err := c.send(ctx, method, c.baseURL, table, rawQuery, payload, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound && c.fallbackURL != "" {
		c.logger.Warn("网关主地址返回 404，改用备用地址重试",
			zap.String("table", table),
			zap.String("method", method),
		)
		body, status, err = c.send(ctx, method, c.fallbackURL, table, rawQuery, payload, token)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, &RemoteError{Table: table, Status: status, Message: backendMessage(body)}
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, method, base, table, rawQuery string, payload interface{}, token string) ([]byte, int, error) {
	u := fmt.Sprintf("%s/api/tables/%s", base, url.PathEscape(table))
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("编码请求体失败: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("表 %s 请求失败: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("读取响应失败: %w", err)
	}
	return body, resp.StatusCode, nil
}

// backendMessage 提取后端错误信息（{"error": "..."} 形态）
func backendMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
