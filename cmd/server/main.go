package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"sighting_backend/internal/app/config"
	"sighting_backend/internal/app/di"
	"sighting_backend/internal/app/router"
	"sighting_backend/internal/platform/db"
	"sighting_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// db
	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（未設定・接続失敗時はキャッシュなしで起動）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := redis.NewRedisClient(context.Background(), cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	handlers, err := di.NewHandlers(gdb, rdb, cfg.CacheTTL)
	if err != nil {
		slog.Error("failed to build handlers", "error", err)
		os.Exit(1)
	}

	// ルータ生成
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.NewRouter(handlers, router.Options{CORSOrigins: cfg.CORSOrigins}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "cache", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server stopped")
}
