package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	sightinghandler "sighting_backend/internal/feature/sightings/transport/handler"
	sightingusecase "sighting_backend/internal/feature/sightings/usecase"
	userhandler "sighting_backend/internal/feature/users/transport/handler"
	userusecase "sighting_backend/internal/feature/users/usecase"
	platformhandler "sighting_backend/internal/platform/http/handler"
)

// Handlers はルーターに登録するHTTPハンドラー一式です。
type Handlers struct {
	Users     *userhandler.UserHandler
	Sightings *sightinghandler.SightingHandler
	Health    *platformhandler.HealthHandler
}

// NewHandlers はリポジトリ・ユースケース・ハンドラーを組み立てます。rdb は nil でも構いません。
func NewHandlers(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) (Handlers, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return Handlers{}, fmt.Errorf("get sql.DB: %w", err)
	}

	userUC := userusecase.NewUserUsecase(NewUserRepository(db, rdb, cacheTTL))
	sightingUC := sightingusecase.NewSightingUsecase(NewSightingRepository(db, rdb, cacheTTL))

	return Handlers{
		Users:     userhandler.NewUserHandler(userUC),
		Sightings: sightinghandler.NewSightingHandler(sightingUC),
		Health:    platformhandler.NewHealthHandler(sqlDB),
	}, nil
}
