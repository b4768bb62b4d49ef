// Package router はGinエンジンを構築し、全ルートを登録します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sighting_backend/internal/app/di"
	platformhandler "sighting_backend/internal/platform/http/handler"
	"sighting_backend/internal/platform/http/middleware"
)

// Options はルーターの設定です。
type Options struct {
	// CORSOrigins はブラウザからのアクセスを許可するオリジンです。空の場合CORSミドルウェアは登録しません。
	CORSOrigins []string
}

// NewRouter はミドルウェアとルートを登録したGinエンジンを返します。
func NewRouter(h di.Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/", platformhandler.Root)
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	users := r.Group("/users")
	{
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.POST("", h.Users.Create)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	sightings := r.Group("/sightings")
	{
		sightings.GET("", h.Sightings.List)
		sightings.GET("/:id", h.Sightings.Get)
		sightings.POST("", h.Sightings.Create)
		sightings.PUT("/:id", h.Sightings.Update)
		sightings.DELETE("/:id", h.Sightings.Delete)
	}

	r.NoRoute(platformhandler.NoRoute)
	return r
}
