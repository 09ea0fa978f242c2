package repository

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

type subscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) domain.SubscriptionRepository {
	return &subscriptionRepositoryImpl{
		db: db,
	}
}

// Save re-registering a known endpoint moves it to the new owner and keys
// but keeps the row's id and created_at.
func (r *subscriptionRepositoryImpl) Save(
	ctx context.Context,
	subscription *domain.Subscription,
) (*domain.Subscription, error) {
	m := FromSubscription(subscription)

	result := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
		},
		clause.Returning{},
	).Create(m)
	if result.Error != nil {
		slog.Error("failed to save subscription",
			"user_id", subscription.UserID().String(),
			"error", result.Error,
		)

		return nil, unavailable(result.Error)
	}

	stored, err := m.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to read back subscription: %w", err)
	}

	return stored, nil
}

func (r *subscriptionRepositoryImpl) FindByUserID(ctx context.Context, userID domain.UserID) ([]*domain.Subscription, error) {
	var models []SubscriptionModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		slog.Error("failed to find subscriptions by user",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, unavailable(result.Error)
	}

	subs := make([]*domain.Subscription, 0, len(models))
	for _, m := range models {
		s, err := m.ToEntity()
		if err != nil {
			slog.Warn("skipping unreadable subscription row",
				"subscription_id", m.ID,
				"error", err,
			)

			continue
		}

		subs = append(subs, s)
	}

	return subs, nil
}

func (r *subscriptionRepositoryImpl) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	result := r.db.WithContext(ctx).Where("endpoint = ?", endpoint).Delete(&SubscriptionModel{})
	if result.Error != nil {
		slog.Error("failed to delete subscription",
			"error", result.Error,
		)

		return unavailable(result.Error)
	}

	slog.Debug("subscription deleted",
		"rows", result.RowsAffected,
	)

	return nil
}
