package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

type ReminderModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID      string    `gorm:"column:user_id;type:varchar(255);not null;index:idx_reminders_user_id_due_at,priority:1"`
	Title       string    `gorm:"column:title;type:varchar(100);not null"`
	Description string    `gorm:"column:description;type:text;not null;default:''"`
	DueAt       int64     `gorm:"column:due_at;type:bigint;not null;index:idx_reminders_user_id_due_at,priority:2;index:idx_reminders_due_at"` // unix milliseconds
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (ReminderModel) TableName() string {
	return "reminders"
}

func (m *ReminderModel) ToEntity() (*domain.Reminder, error) {
	reminderID, err := domain.ReminderIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(
		reminderID,
		userID,
		m.Title,
		m.Description,
		domain.TimeOfScore(m.DueAt),
		m.CreatedAt,
	), nil
}

func (m *ReminderModel) ToUpcoming() (domain.UpcomingReminder, error) {
	r, err := m.ToEntity()
	if err != nil {
		return domain.UpcomingReminder{}, err
	}

	return r.ToUpcoming(), nil
}

func FromEntity(e *domain.Reminder) *ReminderModel {
	return &ReminderModel{
		ID:          e.ID().String(),
		UserID:      e.UserID().String(),
		Title:       e.Title(),
		Description: e.Description(),
		DueAt:       e.Score(),
		CreatedAt:   e.CreatedAt(),
	}
}

type SubscriptionModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:varchar(255);not null;index:idx_subscriptions_user_id"`
	Endpoint  string    `gorm:"column:endpoint;type:text;not null;uniqueIndex:idx_subscriptions_endpoint"`
	P256dh    string    `gorm:"column:p256dh;type:text;not null"`
	Auth      string    `gorm:"column:auth;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (m *SubscriptionModel) ToEntity() (*domain.Subscription, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteSubscription(id, userID, m.Endpoint, m.P256dh, m.Auth, m.CreatedAt), nil
}

func FromSubscription(s *domain.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:        s.ID().String(),
		UserID:    s.UserID().String(),
		Endpoint:  s.Endpoint(),
		P256dh:    s.P256dh(),
		Auth:      s.Auth(),
		CreatedAt: s.CreatedAt(),
	}
}

// Models lists every table owned by this service, in migration order.
func Models() []any {
	return []any{&ReminderModel{}, &SubscriptionModel{}}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
