// Package config はプロセス全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sighting_backend/internal/platform/db"
	"sighting_backend/internal/platform/redis"
)

// DefaultCORSOrigin はフロントエンド開発サーバー（Vite）のオリジンです。
const DefaultCORSOrigin = "http://localhost:5173"

// Config はサーバー設定を保持します。
type Config struct {
	HTTPAddr    string
	CORSOrigins []string
	CacheTTL    time.Duration
	LogLevel    slog.Level
	DB          db.Config
	Redis       redis.Config
}

// LoadDotEnv は .env ファイルが存在すれば環境変数として読み込みます。
// 既に設定されている環境変数は上書きしません。
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Info(".env not found; using system environment variables", "path", p)
				continue
			}
			slog.Warn("failed to load .env", "path", p, "error", err)
		}
	}
}

// Load は環境変数から設定を読み込みます。
// CACHE_TTL と LOG_LEVEL の値が不正な場合はエラーを返します。
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		CORSOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", DefaultCORSOrigin)),
		DB:          db.LoadConfigFromEnv(),
		Redis:       redis.LoadConfigFromEnv(),
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = ttl
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList はカンマ区切りの値を分割し、空要素を除きます。
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
