package domain

import (
	"context"
)

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

// ReminderRepository is the per-user, score-ordered store of pending
// reminders. Scores are due times in Unix milliseconds and every range is
// inclusive on both ends. Backend failures are reported as ErrStoreUnavailable.
type ReminderRepository interface {
	Insert(ctx context.Context, reminder *Reminder) error
	ListAll(ctx context.Context, userID UserID) ([]*Reminder, error)
	ListDueBetween(ctx context.Context, userID UserID, lowScore, highScore int64) ([]*Reminder, error)
	ListDueBetweenAllUsers(ctx context.Context, lowScore, highScore int64) ([]UpcomingReminder, error)
	Remove(ctx context.Context, userID UserID, reminderID ReminderID) (bool, error)
	RemovePast(ctx context.Context, userID UserID, cutoffScore int64) (int64, error)
}
