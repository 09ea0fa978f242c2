package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrStoreUnavailable = errors.New("reminder store unavailable")

	ErrInvalidReminderID  = errors.New("invalid reminder ID")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title must not exceed 100 characters")
	ErrDescriptionTooLong = errors.New("description must not exceed 500 characters")
	ErrNonPositiveDueAt   = errors.New("due time must be a positive millisecond timestamp")
	ErrDueAtOutOfRange    = errors.New("due time must not be later than 9999-12-31T23:59:59.999Z")

	ErrInvalidDueWindow = errors.New("invalid due window: widths must not be negative")

	ErrNoDeliveryTarget = errors.New("no delivery target registered for user")
)
