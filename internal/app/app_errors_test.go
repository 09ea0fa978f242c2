package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
)

func TestNewValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name            string
		field           string
		message         string
		expectedError   string
		expectedField   string
		expectedMessage string
	}{
		{
			name:            "title validation error",
			field:           "title",
			message:         "title cannot be empty",
			expectedError:   "validation error: title - title cannot be empty",
			expectedField:   "title",
			expectedMessage: "title cannot be empty",
		},
		{
			name:            "nested keys field",
			field:           "keys.p256dh",
			message:         "subscription p256dh key cannot be empty",
			expectedError:   "validation error: keys.p256dh - subscription p256dh key cannot be empty",
			expectedField:   "keys.p256dh",
			expectedMessage: "subscription p256dh key cannot be empty",
		},
		{
			name:            "due_at validation error",
			field:           "due_at",
			message:         "due time must be a positive millisecond timestamp",
			expectedError:   "validation error: due_at - due time must be a positive millisecond timestamp",
			expectedField:   "due_at",
			expectedMessage: "due time must be a positive millisecond timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedField, err.Field)
			assert.Equal(t, tt.expectedMessage, err.Message)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}

func TestIsValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "is ValidationError",
			err:      app.NewValidationError("field", "message"),
			expected: true,
		},
		{
			name:     "wrapped ValidationError",
			err:      fmt.Errorf("wrapped: %w", app.NewValidationError("field", "message")),
			expected: true,
		},
		{
			name:     "double wrapped ValidationError",
			err:      fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", app.NewValidationError("field", "message"))),
			expected: true,
		},
		{
			name:     "not ValidationError - generic error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "not ValidationError - nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "not ValidationError - sentinel only",
			err:      app.ErrValidation,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := app.IsValidationError(tt.err)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidationErrorUnwrapsToSentinelSuccess(t *testing.T) {
	err := fmt.Errorf("create: %w", app.NewValidationError("title", "too long"))

	assert.ErrorIs(t, err, app.ErrValidation)
	assert.NotErrorIs(t, err, app.ErrInternalError)
}

func TestSentinelErrorsDistinctSuccess(t *testing.T) {
	sentinels := []error{
		app.ErrValidation,
		app.ErrNotFound,
		app.ErrInternalError,
		app.ErrStoreUnavailable,
		app.ErrDeliveryFailed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
