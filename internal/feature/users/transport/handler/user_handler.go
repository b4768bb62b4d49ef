// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
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
	"sighting_backend/internal/feature/users/domain/entity"
	"sighting_backend/internal/feature/users/transport/http/dto"
	"sighting_backend/internal/feature/users/usecase"
	"sighting_backend/internal/platform/http/httperr"
	"sighting_backend/internal/platform/http/params"
)

const msgInvalidBody = "invalid request body"

// UserUsecase はユーザーのユースケースを定義します。
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UserHandler はユーザーに関するHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List はすべてのユーザーを返します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		httperr.Write(c, err, "failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(users))
}

// Get はユーザーと、その目撃記録一覧（新しい順）を返します。
func (h *UserHandler) Get(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	u, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err, "failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, dto.DetailFromEntity(*u))
}

// Create はユーザーを登録します。
// - name/emailの欠落は400
// - メールアドレスの重複は400
// - その他の失敗は500（detailsに原因を含む）
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("user request validation failed", "error", err, "remote_addr", c.ClientIP())
		msg := msgInvalidBody
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msg = usecase.MsgMissingNameOrEmail
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		httperr.WriteWithDetails(c, err, "failed to create user")
		return
	}
	slog.Info("user created", "id", u.ID)
	c.JSON(http.StatusCreated, dto.FromEntity(*u))
}

// Update はユーザーを部分更新します。
func (h *UserHandler) Update(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	var req dto.UpdateUserReq
	// 空ボディは変更なしとして扱う
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("user request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgInvalidBody})
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), id, entity.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		httperr.Write(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*u))
}

// Delete はユーザーとその目撃記録を削除します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		httperr.Write(c, err, "")
		return
	}
	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		httperr.Write(c, err, "failed to delete user")
		return
	}
	slog.Info("user deleted", "id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "user deleted successfully"})
}
