package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

type SubscribeInput struct {
	UserID   string
	Endpoint string
	P256dh   string
	Auth     string
}

type SubscriptionOutput struct {
	ID        string
	UserID    string
	Endpoint  string
	CreatedAt time.Time
}

type SubscriptionUseCase interface {
	Subscribe(ctx context.Context, input SubscribeInput) (SubscriptionOutput, error)
}

type subscriptionUseCaseImpl struct {
	repo domain.SubscriptionRepository
}

func NewSubscriptionUseCase(repo domain.SubscriptionRepository) SubscriptionUseCase {
	return &subscriptionUseCaseImpl{
		repo: repo,
	}
}

// Subscribe registers a push target. Registering an endpoint again rebinds it
// to the caller and refreshes its keys.
func (uc *subscriptionUseCaseImpl) Subscribe(ctx context.Context, input SubscribeInput) (SubscriptionOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return SubscriptionOutput{}, NewValidationError("user_id", err.Error())
	}

	subscription, err := domain.NewSubscription(userID, input.Endpoint, input.P256dh, input.Auth)
	if err != nil {
		return SubscriptionOutput{}, toValidationError(err)
	}

	stored, err := uc.repo.Save(ctx, subscription)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save subscription",
			"error", err,
			"user_id", input.UserID,
		)

		return SubscriptionOutput{}, storeError(err)
	}

	slog.InfoContext(ctx, "push subscription registered",
		"event", "subscription.saved",
		"user_id", input.UserID,
		"subscription_id", stored.ID().String(),
	)

	return SubscriptionOutput{
		ID:        stored.ID().String(),
		UserID:    stored.UserID().String(),
		Endpoint:  stored.Endpoint(),
		CreatedAt: stored.CreatedAt(),
	}, nil
}
