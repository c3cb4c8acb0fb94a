// Package client 是辯論平台後端 API 的 Go 客戶端。
//
// 所有請求都是單純的 request/response：失敗不會自動重試，
// 呼叫端收到錯誤後自行決定是否重新發起。每個錯誤都會被轉成
// 可以直接顯示給用戶的訊息字串。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultErrorMessage 是後端沒有提供錯誤訊息時的預設文字
const defaultErrorMessage = "請求失敗，請稍後再試"

// APIError 是所有請求失敗的統一表示
// Message 一定是可以直接顯示給用戶的文字
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// envelope 是後端所有回應共用的外層結構
type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

// Client 封裝對後端 API 的存取
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     zerolog.Logger
}

// Option 用於調整 Client 的設定
type Option func(*Client)

// WithHTTPClient 替換底層的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession 指定用來保存登入狀態的 Session
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithLogger 指定日誌輸出
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New 建立一個新的 API 客戶端
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		session: NewSession(nil),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session 回傳客戶端目前的登入狀態
func (c *Client) Session() *Session {
	return c.session
}

// do 發送一個請求並解開回應外層
// out 為 nil 時忽略回應內容；data 欄位不存在時退回整個回應本體
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: defaultErrorMessage, Err: err}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Message: defaultErrorMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: defaultErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: defaultErrorMessage, Err: err}
	}

	var env envelope
	envOK := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode >= 400 || (envOK && !env.Success && env.Message != "") {
		// 登入憑證失效時清掉本地登入狀態，登入／註冊本身除外
		if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
			c.session.Clear()
		}

		message := defaultErrorMessage
		if envOK && env.Message != "" {
			message = env.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	// 取 data 欄位；沒有 data 時退回整個回應本體
	payload := raw
	if envOK && len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: defaultErrorMessage, Err: err}
	}
	return nil
}

// isAuthPath 判斷路徑是否屬於登入／註冊／換發 token
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/login") ||
		strings.HasPrefix(path, "/api/auth/register") ||
		strings.HasPrefix(path, "/api/auth/refresh")
}
