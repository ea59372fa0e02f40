package main

import (
	"context"
	"os"

	"github.com/RolAlek/personal-blog/internal/config"
	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/router"
	"github.com/RolAlek/personal-blog/internal/storage"
)

func main() {
	cfg := config.LoadConfig()
	logs.SetLevel(cfg.LogLevel)

	if cfg.DBUrl == "" {
		logs.LogJSON("FATAL", "DATABASE_URL manquant", nil)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		logs.LogJSON("FATAL", "JWT_SECRET manquant", nil)
		os.Exit(1)
	}

	if err := database.Connect(cfg.DBDriver, cfg.DBUrl); err != nil {
		logs.LogJSON("FATAL", "Database connection failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if err := database.Migrate(router.Models()...); err != nil {
		logs.LogJSON("FATAL", "Database migration failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.StorageEnabled() {
		err := storage.InitS3(context.Background(), cfg.AWSBucket, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSEndpoint, cfg.ImageURLExpiry)
		if err != nil {
			logs.LogJSON("FATAL", "S3 init failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}

	r := router.SetupRouter(cfg)
	logs.LogJSON("INFO", "Server starting", map[string]interface{}{"port": cfg.Port, "driver": cfg.DBDriver})
	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
