package domain

import (
	"time"
)

// DueWindow is the inclusive range a scan treats as ready to notify:
// [now-graceBefore, now+lookahead].
type DueWindow struct {
	start time.Time
	end   time.Time
}

const (
	DefaultGraceBefore = 30 * time.Second
	DefaultLookahead   = 90 * time.Second
)

func NewDueWindow(now time.Time, graceBefore, lookahead time.Duration) (DueWindow, error) {
	if graceBefore < 0 || lookahead < 0 {
		return DueWindow{}, ErrInvalidDueWindow
	}

	return DueWindow{
		start: now.Add(-graceBefore),
		end:   now.Add(lookahead),
	}, nil
}

func MustDueWindow(now time.Time, graceBefore, lookahead time.Duration) DueWindow {
	w, err := NewDueWindow(now, graceBefore, lookahead)
	if err != nil {
		panic(err)
	}

	return w
}

func (w DueWindow) Start() time.Time {
	return w.start
}

func (w DueWindow) End() time.Time {
	return w.end
}

func (w DueWindow) LowScore() int64 {
	return ScoreOf(w.start)
}

func (w DueWindow) HighScore() int64 {
	return ScoreOf(w.end)
}

func (w DueWindow) Contains(t time.Time) bool {
	score := ScoreOf(t)

	return score >= w.LowScore() && score <= w.HighScore()
}

func (w DueWindow) Width() time.Duration {
	return w.end.Sub(w.start)
}

// Covers reports whether consecutive windows taken every interval leave no
// gap between them.
func Covers(graceBefore, lookahead, interval time.Duration) bool {
	return graceBefore+lookahead >= interval
}
