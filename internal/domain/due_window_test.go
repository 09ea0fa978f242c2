package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

func TestNewDueWindowSuccess(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name     string
		offset   time.Duration
		expected bool
	}{
		{
			name:     "due shortly after now",
			offset:   10 * time.Second,
			expected: true,
		},
		{
			name:     "due exactly now",
			offset:   0,
			expected: true,
		},
		{
			name:     "lower bound inclusive",
			offset:   -30 * time.Second,
			expected: true,
		},
		{
			name:     "upper bound inclusive",
			offset:   90 * time.Second,
			expected: true,
		},
		{
			name:     "just before lower bound",
			offset:   -30*time.Second - time.Millisecond,
			expected: false,
		},
		{
			name:     "beyond lookahead",
			offset:   200 * time.Second,
			expected: false,
		},
	}

	w, err := domain.NewDueWindow(now, domain.DefaultGraceBefore, domain.DefaultLookahead)
	require.NoError(t, err)

	assert.Equal(t, now.Add(-30*time.Second), w.Start())
	assert.Equal(t, now.Add(90*time.Second), w.End())
	assert.Equal(t, 2*time.Minute, w.Width())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Contains(now.Add(tt.offset)))
		})
	}
}

func TestNewDueWindowError(t *testing.T) {
	tests := []struct {
		name        string
		graceBefore time.Duration
		lookahead   time.Duration
	}{
		{
			name:        "negative grace",
			graceBefore: -time.Second,
			lookahead:   time.Minute,
		},
		{
			name:        "negative lookahead",
			graceBefore: time.Second,
			lookahead:   -time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewDueWindow(time.Now(), tt.graceBefore, tt.lookahead)

			assert.ErrorIs(t, err, domain.ErrInvalidDueWindow)
		})
	}
}

func TestDueWindowScoresSuccess(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	w := domain.MustDueWindow(now, 30*time.Second, 90*time.Second)

	assert.Equal(t, int64(1_700_000_000_000-30_000), w.LowScore())
	assert.Equal(t, int64(1_700_000_000_000+90_000), w.HighScore())
}

func TestCoversSuccess(t *testing.T) {
	assert.True(t, domain.Covers(30*time.Second, 90*time.Second, time.Minute))
	assert.True(t, domain.Covers(0, time.Minute, time.Minute))
	assert.False(t, domain.Covers(10*time.Second, 20*time.Second, time.Minute))
}
