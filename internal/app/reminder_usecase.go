package app

import (
	"context"
)

type ReminderUseCase interface {
	CreateReminder(ctx context.Context, input CreateReminderInput) (ReminderOutput, error)
	ListReminders(ctx context.Context, input ListRemindersInput) (RemindersOutput, error)
	ListUpcoming(ctx context.Context, input ListUpcomingInput) (RemindersOutput, error)
	DeleteReminder(ctx context.Context, input DeleteReminderInput) (bool, error)
	SweepPastReminders(ctx context.Context, input SweepPastRemindersInput) (int64, error)
}
