package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*watermillPublisher, *gochannel.GoChannel) {
	t.Helper()

	logger := watermill.NopLogger{}
	channel := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, logger)

	return &watermillPublisher{publisher: channel, logger: logger}, channel
}

func receive(t *testing.T, channel *gochannel.GoChannel, topic string) *message.Message {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := channel.Subscribe(ctx, topic)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		msg.Ack()

		return msg
	case <-ctx.Done():
		t.Fatalf("no message received on %s", topic)

		return nil
	}
}

func TestPublishReminderDueSuccess(t *testing.T) {
	publisher, channel := newTestPublisher(t)
	defer publisher.Close()

	dueAt := time.UnixMilli(1_700_000_000_000).UTC()

	err := publisher.PublishReminderDue(context.Background(), &ReminderDueEvent{
		ReminderID:  "r-1",
		UserID:      "user_1",
		Title:       "Dentist",
		Description: "Bring card",
		DueAt:       dueAt,
		EmittedAt:   dueAt,
	})
	require.NoError(t, err)

	msg := receive(t, channel, TopicReminderDue)

	assert.Equal(t, TopicReminderDue, msg.Metadata.Get("event_type"))
	assert.Equal(t, "r-1", msg.Metadata.Get("reminder_id"))
	assert.Equal(t, "user_1", msg.Metadata.Get("user_id"))

	var got ReminderDueEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, "Dentist", got.Title)
	assert.True(t, dueAt.Equal(got.DueAt))
}

func TestPublishReminderCancelledSuccess(t *testing.T) {
	publisher, channel := newTestPublisher(t)
	defer publisher.Close()

	err := publisher.PublishReminderCancelled(context.Background(), &ReminderCancelledEvent{
		ReminderID:  "r-2",
		UserID:      "user_2",
		CancelledAt: time.Now(),
	})
	require.NoError(t, err)

	msg := receive(t, channel, TopicReminderCancelled)

	assert.Equal(t, TopicReminderCancelled, msg.Metadata.Get("event_type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, "r-2", got["reminder_id"])
	assert.Contains(t, got, "cancelled_at")
}

func TestPublishAfterCloseError(t *testing.T) {
	publisher, _ := newTestPublisher(t)
	require.NoError(t, publisher.Close())

	err := publisher.PublishReminderDue(context.Background(), &ReminderDueEvent{ReminderID: "r-3"})

	assert.Error(t, err)
}
