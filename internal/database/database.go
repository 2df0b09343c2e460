package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"grants-governance/internal/config"
	"grants-governance/internal/models"
)

// Connect opens the configured database: PostgreSQL in production, SQLite for local runs
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqlLog, err := zap.NewStdLogAt(log.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build gorm logger: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   newGormLogger(sqlLog),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// slowQueryThreshold is the duration above which gorm reports a query as slow
const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger reports slow queries and errors at warn level; missing records are not errors
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	for _, model := range []interface{}{
		&models.User{},
		&models.ApplicationDraft{},
	} {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	log.Info("Database migrations completed")
	return nil
}
