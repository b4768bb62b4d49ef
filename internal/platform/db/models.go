package db

import (
	"time"

	"gorm.io/gorm"
)

// UserModel は users テーブルの行を表します。
// Sightings は所有される側からの逆参照で、外部キーは sightings.user_id にあります。
// ユーザー削除時は OnDelete:CASCADE によりストア側で目撃記録も削除されます。
type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Sightings []SightingModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TableName はテーブル名を返します。
func (UserModel) TableName() string {
	return "users"
}

// SightingModel は sightings テーブルの行を表します。
type SightingModel struct {
	ID          uint      `gorm:"primaryKey"`
	Description string    `gorm:"type:text;not null"`
	Location    string    `gorm:"size:255;not null"`
	DateTime    time.Time `gorm:"not null"`
	UserID      uint      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	// User は所有者への belongs-to 参照です。一覧・詳細取得時に id/name/email のみ Preload します。
	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName はテーブル名を返します。
func (SightingModel) TableName() string {
	return "sightings"
}

// AutoMigrate はモデル定義からテーブル・インデックス・外部キー制約を作成します。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &SightingModel{})
}
