package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/pubsub"
)

type pubSubGateway struct {
	publisher pubsub.Publisher
}

// NewPubSubGateway hands due reminders to a downstream notification service
// as reminder.due events. Notify succeeds once the broker accepted the event
// and gives up when ctx ends first; the abandoned publish may still land.
func NewPubSubGateway(publisher pubsub.Publisher) domain.NotificationGateway {
	return &pubSubGateway{
		publisher: publisher,
	}
}

func (g *pubSubGateway) Notify(ctx context.Context, userID domain.UserID, notification domain.Notification) error {
	event := &pubsub.ReminderDueEvent{
		ReminderID:  notification.CorrelationID,
		UserID:      userID.String(),
		Title:       notification.Title,
		Description: notification.Description,
		DueAt:       notification.DueAt,
		EmittedAt:   time.Now(),
	}

	// watermill publishers take no context, so a stuck broker would outlive
	// the delivery deadline without this select.
	done := make(chan error, 1)
	go func() {
		done <- g.publisher.PublishReminderDue(ctx, event)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to hand off reminder: %w", err)
		}

		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to hand off reminder: %w", ctx.Err())
	}
}
