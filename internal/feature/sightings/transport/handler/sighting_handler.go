// Package handler はsightingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"sighting_backend/internal/api"
	"sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/sightings/transport/http/dto"
	"sighting_backend/internal/feature/sightings/usecase"
	"sighting_backend/internal/platform/http/httperr"
	"sighting_backend/internal/platform/http/params"
)

const (
	msgInvalidBody     = "invalid request body"
	msgInvalidDateTime = "invalid dateTime format"
)

// SightingUsecase は目撃記録のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SightingUsecase interface {
	ListSightings(ctx context.Context) ([]entity.Sighting, error)
	GetSighting(ctx context.Context, id uint) (*entity.Sighting, error)
	CreateSighting(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error)
	UpdateSighting(ctx context.Context, id uint, patch entity.SightingPatch) (*entity.Sighting, error)
	DeleteSighting(ctx context.Context, id uint) error
}

// SightingHandler は目撃記録に関するHTTPリクエストを処理します。
type SightingHandler struct {
	uc SightingUsecase
}

// NewSightingHandler は新しい SightingHandler を作成します。
func NewSightingHandler(uc SightingUsecase) *SightingHandler {
	return &SightingHandler{uc: uc}
}

// List は作成日時の降順で目撃記録の一覧を返します。
// 各記録には所有者の id/name/email のみが含まれます。
func (h *SightingHandler) List(c *gin.Context) {
	sightings, err := h.uc.ListSightings(c.Request.Context())
	if err != nil {
		httperr.Write(c, err, "failed to fetch sightings")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(sightings))
}

// Get はIDで指定された目撃記録を返します。
// - IDが数値でない場合は400
// - 存在しない場合は404
func (h *SightingHandler) Get(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	s, err := h.uc.GetSighting(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err, "failed to fetch sighting")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Create は目撃記録を登録します。
// - 必須項目の欠落、dateTime/userIdの形式不正は400
// - 存在しないユーザーの参照は400（invalid user ID）
// - 成功時は201
func (h *SightingHandler) Create(c *gin.Context) {
	var req dto.CreateSightingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBinding(c, err, usecase.MsgMissingFields)
		return
	}
	when, err := dto.ParseDateTime(req.DateTime)
	if err != nil {
		slog.Warn("sighting dateTime rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgInvalidDateTime})
		return
	}

	s, err := h.uc.CreateSighting(c.Request.Context(), entity.NewSighting{
		Description: req.Description,
		Location:    req.Location,
		DateTime:    when,
		UserID:      uint(req.UserID),
	})
	if err != nil {
		httperr.Write(c, err, "failed to create sighting")
		return
	}
	slog.Info("sighting created", "id", s.ID, "user_id", s.UserID)
	c.JSON(http.StatusCreated, dto.FromEntity(*s))
}

// Update は目撃記録を部分更新します。指定されたフィールドのみが置き換えられます。
func (h *SightingHandler) Update(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	var req dto.UpdateSightingReq
	// 空ボディは変更なしとして扱う
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.rejectBinding(c, err, msgInvalidBody)
		return
	}

	patch := entity.SightingPatch{
		Description: req.Description,
		Location:    req.Location,
	}
	if req.DateTime != nil {
		when, err := dto.ParseDateTime(*req.DateTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgInvalidDateTime})
			return
		}
		patch.DateTime = &when
	}
	if req.UserID != nil {
		uid := uint(*req.UserID)
		patch.UserID = &uid
	}

	s, err := h.uc.UpdateSighting(c.Request.Context(), id, patch)
	if err != nil {
		httperr.Write(c, err, "failed to update sighting")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Delete は目撃記録を削除し、確認メッセージを返します。
func (h *SightingHandler) Delete(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	if err := h.uc.DeleteSighting(c.Request.Context(), id); err != nil {
		httperr.Write(c, err, "failed to delete sighting")
		return
	}
	slog.Info("sighting deleted", "id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "sighting deleted successfully"})
}

// rejectBinding はリクエストボディのバインド失敗を400として返します。
// 必須項目のバリデーションエラーの場合は onValidation を、userIdの形式不正の場合は
// invalid user ID を、それ以外（JSON構文エラー等）は invalid request body を返します。
func (h *SightingHandler) rejectBinding(c *gin.Context, err error, onValidation string) {
	slog.Warn("sighting request validation failed", "error", err, "remote_addr", c.ClientIP())

	msg := msgInvalidBody
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		msg = onValidation
	case errors.Is(err, dto.ErrUserIDFormat):
		msg = usecase.MsgInvalidUserID
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}
