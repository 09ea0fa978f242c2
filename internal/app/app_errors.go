package app

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("resource not found")
	ErrInternalError    = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDeliveryFailed   = errors.New("delivery failed")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

var fieldOfDomainError = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidUserID, "user_id"},
	{domain.ErrInvalidReminderID, "id"},
	{domain.ErrEmptyTitle, "title"},
	{domain.ErrTitleTooLong, "title"},
	{domain.ErrDescriptionTooLong, "description"},
	{domain.ErrNonPositiveDueAt, "due_at"},
	{domain.ErrDueAtOutOfRange, "due_at"},
	{domain.ErrInvalidEndpoint, "endpoint"},
	{domain.ErrEmptyP256dh, "keys.p256dh"},
	{domain.ErrEmptyAuthSecret, "keys.auth"},
}

// toValidationError names the request field a domain rule rejected.
func toValidationError(err error) *ValidationError {
	for _, f := range fieldOfDomainError {
		if errors.Is(err, f.err) {
			return NewValidationError(f.field, err.Error())
		}
	}

	return NewValidationError("request", err.Error())
}

// storeError keeps an unavailable backend distinguishable from other
// internal failures for callers that retry.
func storeError(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrInternalError, err)
}
