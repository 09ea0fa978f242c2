package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500

	// MaxDueAtMillis is 9999-12-31T23:59:59.999Z. Scores stay well below
	// 2^53, so they survive float64 sorted-set scores exactly.
	MaxDueAtMillis int64 = 253402300799999
)

// Reminder is immutable once created; removal from the store is its only
// state transition.
type Reminder struct {
	id          ReminderID
	userID      UserID
	title       string
	description string
	dueAt       time.Time
	createdAt   time.Time
}

func NewReminder(
	userID UserID,
	title string,
	description string,
	dueAtMillis int64,
) (*Reminder, error) {
	if userID.IsZero() {
		return nil, ErrInvalidUserID
	}

	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	if err := validateScore(dueAtMillis); err != nil {
		return nil, err
	}

	return &Reminder{
		id:          NewReminderID(),
		userID:      userID,
		title:       title,
		description: description,
		dueAt:       TimeOfScore(dueAtMillis),
		createdAt:   time.Now(),
	}, nil
}

func Reconstitute(
	id ReminderID,
	userID UserID,
	title string,
	description string,
	dueAt time.Time,
	createdAt time.Time,
) *Reminder {
	return &Reminder{
		id:          id,
		userID:      userID,
		title:       title,
		description: description,
		dueAt:       dueAt,
		createdAt:   createdAt,
	}
}

func validateScore(score int64) error {
	if score <= 0 {
		return ErrNonPositiveDueAt
	}

	if score > MaxDueAtMillis {
		return ErrDueAtOutOfRange
	}

	return nil
}

// ValidScore reports whether score is a storable due time.
func ValidScore(score int64) bool {
	return validateScore(score) == nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	return nil
}

func (r *Reminder) ID() ReminderID {
	return r.id
}

func (r *Reminder) UserID() UserID {
	return r.userID
}

func (r *Reminder) Title() string {
	return r.title
}

func (r *Reminder) Description() string {
	return r.description
}

func (r *Reminder) DueAt() time.Time {
	return r.dueAt
}

// Score is the sort key of the reminder inside its user's collection.
func (r *Reminder) Score() int64 {
	return ScoreOf(r.dueAt)
}

func (r *Reminder) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Reminder) IsDueBy(t time.Time) bool {
	return !r.dueAt.After(t)
}

func (r *Reminder) ToUpcoming() UpcomingReminder {
	return UpcomingReminder{
		UserID:      r.userID,
		ReminderID:  r.id,
		Title:       r.title,
		Description: r.description,
		DueAt:       r.dueAt,
	}
}

// UpcomingReminder is the scan-local projection handed to delivery. It is
// never persisted.
type UpcomingReminder struct {
	UserID      UserID
	ReminderID  ReminderID
	Title       string
	Description string
	DueAt       time.Time
}

func ScoreOf(t time.Time) int64 {
	return t.UnixMilli()
}

func TimeOfScore(score int64) time.Time {
	return time.UnixMilli(score)
}
