package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope 是所有 API 回應共用的外層結構
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Timestamp  string      `json:"timestamp"`
	Path       string      `json:"path"`
	Method     string      `json:"method"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// respond 以統一格式回傳成功結果
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Data:       data,
		Message:    message,
	})
}

// respondError 以統一格式回傳錯誤訊息
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Message:    message,
	})
}
