package handler

import (
	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
)

type ReminderResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueAt       int64  `json:"due_at"`     // epoch milliseconds
	CreatedAt   int64  `json:"created_at"` // epoch milliseconds
}

type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int32              `json:"count"`
}

type SubscriptionResponse struct {
	ID        string `json:"id"`
	Endpoint  string `json:"endpoint"`
	CreatedAt int64  `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromDTO(output app.ReminderOutput) ReminderResponse {
	return ReminderResponse{
		ID:          output.ID,
		UserID:      output.UserID,
		Title:       output.Title,
		Description: output.Description,
		DueAt:       output.DueAt.UnixMilli(),
		CreatedAt:   output.CreatedAt.UnixMilli(),
	}
}

func FromDTOs(output app.RemindersOutput) RemindersResponse {
	reminders := make([]ReminderResponse, 0, len(output.Reminders))
	for _, r := range output.Reminders {
		reminders = append(reminders, FromDTO(r))
	}

	return RemindersResponse{
		Reminders: reminders,
		Count:     output.Count,
	}
}

func FromSubscriptionDTO(output app.SubscriptionOutput) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        output.ID,
		Endpoint:  output.Endpoint,
		CreatedAt: output.CreatedAt.UnixMilli(),
	}
}
