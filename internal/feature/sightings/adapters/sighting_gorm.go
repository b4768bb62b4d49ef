// Package adapters はsightingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/sightings/usecase"
	platformdb "sighting_backend/internal/platform/db"
	"sighting_backend/internal/shared/apperror"
)

// sightingGorm はSightingRepositoryインターフェースのGORM実装です。
type sightingGorm struct {
	db *gorm.DB
}

// sightingGormがSightingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SightingRepository = (*sightingGorm)(nil)

// NewSightingRepository は指定されたDB接続でsightingGormの新しいインスタンスを生成します。
func NewSightingRepository(db *gorm.DB) *sightingGorm {
	return &sightingGorm{db: db}
}

// selectUserSummary は所有者のうち id/name/email のみを読み込みます。
// 所有者の目撃記録一覧は読み込まないため再帰的な展開は発生しません。
func selectUserSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email")
}

// List は作成日時の降順（同時刻はID降順）ですべての目撃記録を返します。
func (r *sightingGorm) List(ctx context.Context) ([]entity.Sighting, error) {
	var rows []platformdb.SightingModel
	if err := r.db.WithContext(ctx).
		Preload("User", selectUserSummary).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, apperror.Internal("list sightings", err)
	}
	out := make([]entity.Sighting, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByID はIDで目撃記録を取得します。
// 存在しない場合、usecase.ErrSightingNotFoundを返します。
func (r *sightingGorm) FindByID(ctx context.Context, id uint) (*entity.Sighting, error) {
	var m platformdb.SightingModel
	if err := r.db.WithContext(ctx).
		Preload("User", selectUserSummary).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if platformdb.IsNotFound(err) {
			return nil, usecase.ErrSightingNotFound
		}
		return nil, apperror.Internal("find sighting", err)
	}
	s := toEntity(m)
	return &s, nil
}

// Create は目撃記録を追加し、所有者の概要付きで返します。
// 参照先ユーザーが存在しない場合（外部キー違反）、KindConflictのエラーを返します。
func (r *sightingGorm) Create(ctx context.Context, in entity.NewSighting) (*entity.Sighting, error) {
	m := platformdb.SightingModel{
		Description: in.Description,
		Location:    in.Location,
		DateTime:    in.DateTime.UTC(),
		UserID:      in.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, translateWriteError("create sighting", err)
	}
	return r.FindByID(ctx, m.ID)
}

// Update は指定されたフィールドのみを更新し、更新後の目撃記録を返します。
// 事前の存在確認は行わず、更新後の再取得で存在しないことを検出します。
func (r *sightingGorm) Update(ctx context.Context, id uint, patch entity.SightingPatch) (*entity.Sighting, error) {
	if !patch.IsEmpty() {
		if err := r.db.WithContext(ctx).
			Model(&platformdb.SightingModel{}).
			Where("id = ?", id).
			Updates(patchColumns(patch)).Error; err != nil {
			return nil, translateWriteError("update sighting", err)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete は目撃記録を削除します。
// 削除対象の行がない場合、usecase.ErrSightingNotFoundを返します。
func (r *sightingGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&platformdb.SightingModel{}, id)
	if res.Error != nil {
		return apperror.Internal("delete sighting", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSightingNotFound
	}
	return nil
}

// patchColumns は更新対象のカラムと値の組を返します。
func patchColumns(p entity.SightingPatch) map[string]any {
	cols := map[string]any{}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.DateTime != nil {
		cols["date_time"] = p.DateTime.UTC()
	}
	if p.UserID != nil {
		cols["user_id"] = *p.UserID
	}
	return cols
}

// translateWriteError は書き込み時のストアエラーをアプリケーションエラーへ変換します。
func translateWriteError(op string, err error) error {
	if platformdb.IsForeignKeyViolation(err) {
		return apperror.Conflict(usecase.MsgInvalidUserID, err)
	}
	return apperror.Internal(op, err)
}

func toEntity(m platformdb.SightingModel) entity.Sighting {
	s := entity.Sighting{
		ID:          m.ID,
		Description: m.Description,
		Location:    m.Location,
		DateTime:    m.DateTime,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.User != nil {
		s.User = &entity.UserSummary{ID: m.User.ID, Name: m.User.Name, Email: m.User.Email}
	}
	return s
}
