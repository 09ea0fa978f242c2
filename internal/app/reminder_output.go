package app

import (
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

type ReminderOutput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueAt       time.Time
	CreatedAt   time.Time
}

type RemindersOutput struct {
	Reminders []ReminderOutput
	Count     int32
}

func FromEntity(reminder *domain.Reminder) ReminderOutput {
	return ReminderOutput{
		ID:          reminder.ID().String(),
		UserID:      reminder.UserID().String(),
		Title:       reminder.Title(),
		Description: reminder.Description(),
		DueAt:       reminder.DueAt(),
		CreatedAt:   reminder.CreatedAt(),
	}
}

func FromEntities(reminders []*domain.Reminder) RemindersOutput {
	outputs := make([]ReminderOutput, 0, len(reminders))
	for _, r := range reminders {
		outputs = append(outputs, FromEntity(r))
	}

	return RemindersOutput{
		Reminders: outputs,
		Count:     int32(len(outputs)), //nolint:gosec
	}
}
