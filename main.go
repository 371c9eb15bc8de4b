package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/config"
	"github.com/bst-coder/irrigation-last/models"
	"github.com/bst-coder/irrigation-last/routes"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Zone{},
		&models.SensorReading{},
		&models.AckRecord{},
	); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	r := routes.SetupRouter(db, cfg)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
