// Package middleware はリクエストIDの付与とアクセスログのGinミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すHTTPヘッダーです。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.Context上のリクエストIDのキーです。
	ContextRequestID = "requestID"
)

// RequestID はクライアントから受け取った X-Request-ID を引き継ぎ、
// 無い場合はUUIDを採番してレスポンスヘッダーとコンテキストに設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom はコンテキストに設定されたリクエストIDを返します。未設定の場合は空文字です。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// AccessLog はリクエストごとに構造化アクセスログを出力します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
			"request_id", RequestIDFrom(c),
		)
	}
}
