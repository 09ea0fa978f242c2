package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

const DefaultDeliveryTimeout = 10 * time.Second

// DeliveryCoordinator notifies the owner of one due reminder and retires it.
// The reminder is removed only after the gateway accepted the notification,
// so a failed delivery stays in the store for a later scan.
type DeliveryCoordinator interface {
	Deliver(ctx context.Context, reminder domain.UpcomingReminder) error
}

type deliveryCoordinatorImpl struct {
	repo    domain.ReminderRepository
	gateway domain.NotificationGateway
	timeout time.Duration
}

func NewDeliveryCoordinator(
	repo domain.ReminderRepository,
	gateway domain.NotificationGateway,
	timeout time.Duration,
) DeliveryCoordinator {
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}

	return &deliveryCoordinatorImpl{
		repo:    repo,
		gateway: gateway,
		timeout: timeout,
	}
}

func (c *deliveryCoordinatorImpl) Deliver(ctx context.Context, reminder domain.UpcomingReminder) error {
	notifyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.gateway.Notify(notifyCtx, reminder.UserID, domain.NotificationFor(reminder))
	cancel()

	if err != nil {
		slog.WarnContext(ctx, "reminder delivery failed",
			"event", "reminder.delivery_failed",
			"user_id", reminder.UserID.String(),
			"reminder_id", reminder.ReminderID.String(),
			"due_at", reminder.DueAt,
			"error", err.Error(),
		)

		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	removed, err := c.repo.Remove(ctx, reminder.UserID, reminder.ReminderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to remove delivered reminder",
			"event", "reminder.remove_failed",
			"user_id", reminder.UserID.String(),
			"reminder_id", reminder.ReminderID.String(),
			"error", err.Error(),
		)

		return storeError(err)
	}

	if !removed {
		slog.DebugContext(ctx, "delivered reminder was already gone",
			"user_id", reminder.UserID.String(),
			"reminder_id", reminder.ReminderID.String(),
		)
	}

	slog.InfoContext(ctx, "reminder delivered",
		"event", "reminder.delivered",
		"user_id", reminder.UserID.String(),
		"reminder_id", reminder.ReminderID.String(),
		"due_at", reminder.DueAt,
	)

	return nil
}
