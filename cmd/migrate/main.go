// Command migrate はスキーマを同期し、必要に応じてデモ用データを投入します。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"sighting_backend/internal/app/config"
	sightingadapters "sighting_backend/internal/feature/sightings/adapters"
	useradapters "sighting_backend/internal/feature/users/adapters"
	"sighting_backend/internal/platform/db"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo users and sightings after migrating")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	cfg.DB.Migrate = true
	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrate ok", "driver", cfg.DB.Driver)

	if !*seed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	users := useradapters.NewUserRepository(gdb)
	sightings := sightingadapters.NewSightingRepository(gdb)

	seeded, err := seedDemo(ctx, users, sightings, time.Now().UTC())
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	if !seeded {
		slog.Info("seed skipped, demo data already present", "email", demoEmail)
		return
	}
	slog.Info("seed ok")
}
