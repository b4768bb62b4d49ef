// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	sightingentity "sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/users/domain/entity"
	"sighting_backend/internal/feature/users/usecase"
	platformdb "sighting_backend/internal/platform/db"
	"sighting_backend/internal/shared/apperror"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたDB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// List は名前の昇順（同名はID昇順）ですべてのユーザーを返します。目撃記録は読み込みません。
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var rows []platformdb.UserModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperror.Internal("list users", err)
	}
	out := make([]entity.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByID はIDでユーザーを取得し、目撃記録を新しい順で付与します。
// 存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m platformdb.UserModel
	if err := r.db.WithContext(ctx).
		Preload("Sightings", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC").Order("id DESC")
		}).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, apperror.Internal("find user", err)
	}
	u := toEntity(m)
	u.Sightings = make([]sightingentity.Sighting, 0, len(m.Sightings))
	for _, s := range m.Sightings {
		u.Sightings = append(u.Sightings, sightingentity.Sighting{
			ID:          s.ID,
			Description: s.Description,
			Location:    s.Location,
			DateTime:    s.DateTime,
			UserID:      s.UserID,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return &u, nil
}

// Create はユーザーを追加します。
// メールアドレスが重複する場合、KindConflictのエラーを返します。
func (r *userGorm) Create(ctx context.Context, name, email string) (*entity.User, error) {
	m := platformdb.UserModel{Name: name, Email: email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, translateWriteError("create user", err)
	}
	u := toEntity(m)
	return &u, nil
}

// Update は指定されたフィールドのみを更新し、更新後のユーザーを返します。
// 事前の存在確認は行わず、更新後の再取得で存在しないことを検出します。
func (r *userGorm) Update(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error) {
	if !patch.IsEmpty() {
		cols := map[string]any{}
		if patch.Name != nil {
			cols["name"] = *patch.Name
		}
		if patch.Email != nil {
			cols["email"] = *patch.Email
		}
		if err := r.db.WithContext(ctx).
			Model(&platformdb.UserModel{}).
			Where("id = ?", id).
			Updates(cols).Error; err != nil {
			return nil, translateWriteError("update user", err)
		}
	}

	var m platformdb.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, apperror.Internal("reload user", err)
	}
	u := toEntity(m)
	return &u, nil
}

// Delete はユーザーを削除します。目撃記録は外部キーの ON DELETE CASCADE で削除されます。
// 削除対象の行がない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&platformdb.UserModel{}, id)
	if res.Error != nil {
		return apperror.Internal("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// translateWriteError は書き込み時のストアエラーをアプリケーションエラーへ変換します。
func translateWriteError(op string, err error) error {
	if platformdb.IsDuplicateKey(err) {
		return apperror.Conflict(usecase.MsgEmailExists, err)
	}
	return apperror.Internal(op, err)
}

func toEntity(m platformdb.UserModel) entity.User {
	return entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
