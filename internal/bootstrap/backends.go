package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/redisstore"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/repository"
)

// Backends holds the process-wide connection pools and the repositories
// built on them.
type Backends struct {
	Reminders domain.ReminderRepository
	// Subscriptions is nil when no database is configured.
	Subscriptions domain.SubscriptionRepository

	redis *redis.Client
	db    *gorm.DB
}

// OpenBackends connects the configured reminder store, and Postgres whenever
// a DSN is present so push subscriptions can be stored.
func OpenBackends(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	if cfg.Database.DSN != "" {
		db, err := OpenDatabase(cfg.Database, slogLevel(cfg))
		if err != nil {
			return nil, err
		}

		b.db = db
		b.Subscriptions = repository.NewSubscriptionRepository(db)
	}

	switch cfg.Store.Backend {
	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, redisstore.ClientConfig{
			URL:      cfg.Redis.URL,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, errors.Join(err, b.Close())
		}

		b.redis = client
		b.Reminders = redisstore.NewReminderStore(client)
	case config.BackendPostgres:
		if b.db == nil {
			return nil, errors.New("postgres store backend requires a database DSN")
		}

		b.Reminders = repository.NewReminderRepository(b.db)
	default:
		return nil, errors.Join(fmt.Errorf("unknown store backend %q", cfg.Store.Backend), b.Close())
	}

	slog.Info("reminder store ready",
		"backend", cfg.Store.Backend,
		"subscriptions", b.Subscriptions != nil,
	)

	return b, nil
}

func (b *Backends) Close() error {
	var errs []error

	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if b.db != nil {
		sqlDB, err := b.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
