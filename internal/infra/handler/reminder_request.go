package handler

// Field-level checks happen in the domain so that errors carry the field name.

type CreateReminderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueAt       int64  `json:"due_at"` // epoch milliseconds
}

type SubscribeRequest struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}
