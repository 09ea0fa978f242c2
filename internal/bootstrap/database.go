package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/repository"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// OpenDatabase connects to Postgres, sizes the pool and migrates the schema.
func OpenDatabase(cfg config.DatabaseConfig, level slog.Level) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(slowQueryThreshold, logging.GormLevelFor(level)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := repository.Migrate(db); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database connection pool initialized",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}
