package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/drivemate/kyc-platform/internal/config"
	"github.com/drivemate/kyc-platform/internal/db/schema"
	"github.com/drivemate/kyc-platform/internal/log"

	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)
	log.Debug(ctx, "database", "url", cfg.Database.URL)

	if err := schema.Migrate(cfg.Database.URL); err != nil {
		log.Error(ctx, "error migrating database", "err", err)
		return
	}

	log.Info(ctx, "migration done!")
}
