package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

type Notification struct {
	Title         string
	Description   string
	CorrelationID string
	DueAt         time.Time
}

func NotificationFor(r UpcomingReminder) Notification {
	return Notification{
		Title:         r.Title,
		Description:   r.Description,
		CorrelationID: r.ReminderID.String(),
		DueAt:         r.DueAt,
	}
}

// NotificationGateway pushes a notification to every delivery target of a
// user. A nil error means at least one target accepted it.
type NotificationGateway interface {
	Notify(ctx context.Context, userID UserID, notification Notification) error
}
