package domain_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

func TestNewReminderSuccess(t *testing.T) {
	userID := domain.MustUserID("user_1")
	dueAt := time.Now().Add(time.Hour).UnixMilli()

	tests := []struct {
		name        string
		title       string
		description string
		dueAt       int64
	}{
		{
			name:        "typical reminder",
			title:       "Dentist",
			description: "Bring insurance card",
			dueAt:       dueAt,
		},
		{
			name:        "empty description",
			title:       "Standup",
			description: "",
			dueAt:       dueAt,
		},
		{
			name:        "title at maximum length",
			title:       strings.Repeat("t", domain.MaxTitleLength),
			description: strings.Repeat("d", domain.MaxDescriptionLength),
			dueAt:       dueAt,
		},
		{
			name:        "multibyte title counted by characters",
			title:       strings.Repeat("予", domain.MaxTitleLength),
			description: "",
			dueAt:       dueAt,
		},
		{
			name:        "latest representable due time",
			title:       "Far future",
			description: "",
			dueAt:       domain.MaxDueAtMillis,
		},
		{
			name:        "due time in the past is accepted",
			title:       "Yesterday",
			description: "",
			dueAt:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := domain.NewReminder(userID, tt.title, tt.description, tt.dueAt)

			require.NoError(t, err)
			assert.False(t, r.ID().IsZero())
			assert.True(t, userID.Equals(r.UserID()))
			assert.Equal(t, tt.title, r.Title())
			assert.Equal(t, tt.description, r.Description())
			assert.Equal(t, tt.dueAt, r.Score())
			assert.Equal(t, tt.dueAt, r.DueAt().UnixMilli())
			assert.False(t, r.CreatedAt().IsZero())
		})
	}
}

func TestNewReminderError(t *testing.T) {
	userID := domain.MustUserID("user_1")

	tests := []struct {
		name        string
		userID      domain.UserID
		title       string
		description string
		dueAt       int64
		expectedErr error
	}{
		{
			name:        "zero user",
			userID:      domain.UserID{},
			title:       "t",
			dueAt:       1,
			expectedErr: domain.ErrInvalidUserID,
		},
		{
			name:        "empty title",
			userID:      userID,
			title:       "",
			dueAt:       1,
			expectedErr: domain.ErrEmptyTitle,
		},
		{
			name:        "blank title",
			userID:      userID,
			title:       "   ",
			dueAt:       1,
			expectedErr: domain.ErrEmptyTitle,
		},
		{
			name:        "title too long",
			userID:      userID,
			title:       strings.Repeat("t", domain.MaxTitleLength+1),
			dueAt:       1,
			expectedErr: domain.ErrTitleTooLong,
		},
		{
			name:        "description too long",
			userID:      userID,
			title:       "t",
			description: strings.Repeat("d", domain.MaxDescriptionLength+1),
			dueAt:       1,
			expectedErr: domain.ErrDescriptionTooLong,
		},
		{
			name:        "zero due time",
			userID:      userID,
			title:       "t",
			dueAt:       0,
			expectedErr: domain.ErrNonPositiveDueAt,
		},
		{
			name:        "negative due time",
			userID:      userID,
			title:       "t",
			dueAt:       -5,
			expectedErr: domain.ErrNonPositiveDueAt,
		},
		{
			name:        "due time beyond year 9999",
			userID:      userID,
			title:       "t",
			dueAt:       domain.MaxDueAtMillis + 1,
			expectedErr: domain.ErrDueAtOutOfRange,
		},
		{
			name:        "due time above float64 precision",
			userID:      userID,
			title:       "t",
			dueAt:       1<<53 + 1,
			expectedErr: domain.ErrDueAtOutOfRange,
		},
		{
			name:        "due time at int64 limit",
			userID:      userID,
			title:       "t",
			dueAt:       math.MaxInt64,
			expectedErr: domain.ErrDueAtOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := domain.NewReminder(tt.userID, tt.title, tt.description, tt.dueAt)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, r)
		})
	}
}

func TestReminderToUpcomingSuccess(t *testing.T) {
	r, err := domain.NewReminder(domain.MustUserID("user_1"), "Call mom", "Sunday", 1_700_000_000_000)
	require.NoError(t, err)

	up := r.ToUpcoming()

	assert.True(t, r.UserID().Equals(up.UserID))
	assert.True(t, r.ID().Equals(up.ReminderID))
	assert.Equal(t, "Call mom", up.Title)
	assert.Equal(t, "Sunday", up.Description)
	assert.Equal(t, r.DueAt(), up.DueAt)

	n := domain.NotificationFor(up)
	assert.Equal(t, r.ID().String(), n.CorrelationID)
	assert.Equal(t, "Call mom", n.Title)
}

func TestReminderIsDueBySuccess(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	r := domain.Reconstitute(domain.NewReminderID(), domain.MustUserID("u"), "t", "", now, now)

	assert.True(t, r.IsDueBy(now))
	assert.True(t, r.IsDueBy(now.Add(time.Millisecond)))
	assert.False(t, r.IsDueBy(now.Add(-time.Millisecond)))
}
