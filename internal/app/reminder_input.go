package app

import "time"

type CreateReminderInput struct {
	UserID      string
	Title       string
	Description string
	DueAt       int64
}

type ListRemindersInput struct {
	UserID string
}

type ListUpcomingInput struct {
	UserID string
	From   time.Time
}

type DeleteReminderInput struct {
	UserID     string
	ReminderID string
}

type SweepPastRemindersInput struct {
	UserID string
	Before time.Time
}
