package main

import (
	"log"

	"go.uber.org/zap"

	"grants-governance/internal/config"
	"grants-governance/internal/database"
	"grants-governance/internal/logger"
)

// migrate creates or updates the user and application draft tables without starting the API
func main() {
	// Load configuration
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("Failed to apply migrations", zap.Error(err))
	}
}
