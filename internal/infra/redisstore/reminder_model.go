package redisstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

const (
	userKeyPrefix = "user:reminders:"
	idsKeyPrefix  = "reminders:ids:"
	usersKey      = "reminders:users"
)

func userKey(userID domain.UserID) string {
	return userKeyPrefix + userID.String()
}

func idsKey(userID domain.UserID) string {
	return idsKeyPrefix + userID.String()
}

// reminderMember is the sorted-set member. The score carries the due time;
// Timestamp is kept in the member so two reminders with identical content
// and due time still differ by ReminderID.
type reminderMember struct {
	ReminderID  string `json:"reminderId"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
}

func encodeMember(r *domain.Reminder) (string, error) {
	b, err := json.Marshal(reminderMember{
		ReminderID:  r.ID().String(),
		UserID:      r.UserID().String(),
		Title:       r.Title(),
		Description: r.Description(),
		Timestamp:   strconv.FormatInt(r.Score(), 10),
		CreatedAt:   r.CreatedAt().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func decodeMember(userID domain.UserID, member string, score float64) (*domain.Reminder, error) {
	var m reminderMember
	if err := json.Unmarshal([]byte(member), &m); err != nil {
		return nil, fmt.Errorf("failed to decode reminder member: %w", err)
	}

	id, err := domain.ReminderIDFromString(m.ReminderID)
	if err != nil {
		return nil, err
	}

	var createdAt time.Time
	if m.CreatedAt > 0 {
		createdAt = time.UnixMilli(m.CreatedAt)
	}

	return domain.Reconstitute(
		id,
		userID,
		m.Title,
		m.Description,
		domain.TimeOfScore(int64(score)),
		createdAt,
	), nil
}

func reminderIDOf(member string) (string, error) {
	var m struct {
		ReminderID string `json:"reminderId"`
	}
	if err := json.Unmarshal([]byte(member), &m); err != nil {
		return "", err
	}

	return m.ReminderID, nil
}
