package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/tracing"
)

const (
	TopicReminderDue       = "reminder.due"
	TopicReminderCancelled = "reminder.cancelled"
)

type ReminderDueEvent struct {
	ReminderID  string    `json:"reminder_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	EmittedAt   time.Time `json:"emitted_at"`
}

type ReminderCancelledEvent struct {
	ReminderID  string    `json:"reminder_id"`
	UserID      string    `json:"user_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// watermillPublisher carries the encoding shared by every transport; the
// build-tagged constructors only choose the underlying message.Publisher.
type watermillPublisher struct {
	publisher message.Publisher
	logger    watermill.LoggerAdapter
}

func (p *watermillPublisher) PublishReminderDue(ctx context.Context, event *ReminderDueEvent) error {
	return p.publish(ctx, TopicReminderDue, event, map[string]string{
		"reminder_id": event.ReminderID,
		"user_id":     event.UserID,
	})
}

func (p *watermillPublisher) PublishReminderCancelled(ctx context.Context, event *ReminderCancelledEvent) error {
	return p.publish(ctx, TopicReminderCancelled, event, map[string]string{
		"reminder_id": event.ReminderID,
		"user_id":     event.UserID,
	})
}

func (p *watermillPublisher) publish(ctx context.Context, topic string, event any, metadata map[string]string) error {
	msg, err := newMessage(ctx, topic, event, metadata)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(topic, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("reminder_id", metadata["reminder_id"]),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("reminder_id", metadata["reminder_id"]),
		slog.String("message_id", msg.UUID),
	)

	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

func newMessage(ctx context.Context, eventType string, event any, metadata map[string]string) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", eventType)

	for k, v := range metadata {
		msg.Metadata.Set(k, v)
	}

	carrier := make(map[string]string)
	tracing.InjectToMap(ctx, carrier)

	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	return msg, nil
}
