// Package httperr はアプリケーションエラーをHTTPレスポンスへ一元的に変換します。
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sighting_backend/internal/api"
	"sighting_backend/internal/platform/http/middleware"
	"sighting_backend/internal/shared/apperror"
)

// Status はエラー種別に対応するHTTPステータスコードを返します。
// 制約違反（重複メール、存在しないユーザー参照）はクライアントエラーとして400を返します。
func Status(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInvalid, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write はerrに応じたステータスとエラーボディを書き込みます。
// 分類されていないエラーはサーバー側でログに記録し、クライアントには fallback のみを返します。
func Write(c *gin.Context, err error, fallback string) {
	write(c, err, fallback, false)
}

// WriteWithDetails はWriteと同様ですが、500応答の details に元のエラーメッセージを含めます。
func WriteWithDetails(c *gin.Context, err error, fallback string) {
	write(c, err, fallback, true)
}

func write(c *gin.Context, err error, fallback string, details bool) {
	kind := apperror.KindOf(err)
	if kind != apperror.KindInternal {
		slog.Warn("request rejected",
			"kind", kind.String(), "error", err,
			"path", c.FullPath(), "request_id", middleware.RequestIDFrom(c))
		c.JSON(Status(kind), api.ErrorResponse{Error: apperror.Message(err)})
		return
	}

	slog.Error(fallback,
		"error", err, "method", c.Request.Method,
		"path", c.FullPath(), "request_id", middleware.RequestIDFrom(c))
	body := api.ErrorResponse{Error: fallback}
	if details {
		body.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
