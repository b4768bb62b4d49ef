// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sighting_backend/internal/api"
)

// RootMessage は GET / で返す稼働メッセージです。
const RootMessage = "Observation System API is running"

// pingTimeout はヘルスチェック時のDB疎通確認のタイムアウトです。
const pingTimeout = 2 * time.Second

// Pinger はストアへの疎通確認を行います。*sql.DB がこれを満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler は新しい HealthHandler を作成します。db が nil の場合は疎通確認を行いません。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// DBに到達できない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, code := "ok", http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			slog.Error("health check: database unreachable", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	c.JSON(code, gin.H{"status": status})
}

// Root は GET / に稼働メッセージを返します。
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: RootMessage})
}

// NoRoute は未定義のルートに404を返します。
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "route not found"})
}
