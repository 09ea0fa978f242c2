package repository

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

type reminderRepositoryImpl struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepositoryImpl{
		db: db,
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func (r *reminderRepositoryImpl) Insert(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.UserID().IsZero() || !domain.ValidScore(reminder.Score()) {
		return domain.ErrInvalidArgument
	}

	slog.Debug("saving reminder to database",
		"reminder_id", reminder.ID().String(),
	)

	m := FromEntity(reminder)

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		slog.Error("failed to save reminder to database",
			"reminder_id", reminder.ID().String(),
			"error", result.Error,
		)

		return unavailable(result.Error)
	}

	slog.Debug("reminder saved to database",
		"reminder_id", reminder.ID().String(),
	)

	return nil
}

func (r *reminderRepositoryImpl) ListAll(ctx context.Context, userID domain.UserID) ([]*domain.Reminder, error) {
	slog.Debug("finding reminders by user",
		"user_id", userID.String(),
	)

	var models []ReminderModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("due_at ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		slog.Error("failed to find reminders by user",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, unavailable(result.Error)
	}

	return toEntities(models)
}

func (r *reminderRepositoryImpl) ListDueBetween(
	ctx context.Context,
	userID domain.UserID,
	lowScore, highScore int64,
) ([]*domain.Reminder, error) {
	slog.Debug("finding reminders by due range",
		"user_id", userID.String(),
		"low", lowScore,
		"high", highScore,
	)

	var models []ReminderModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND due_at >= ? AND due_at <= ?", userID.String(), lowScore, highScore).
		Order("due_at ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		slog.Error("failed to find reminders by due range",
			"user_id", userID.String(),
			"low", lowScore,
			"high", highScore,
			"error", result.Error,
		)

		return nil, unavailable(result.Error)
	}

	return toEntities(models)
}

// ListDueBetweenAllUsers uses idx_reminders_due_at, so its cost follows the
// number of due rows rather than the number of users.
func (r *reminderRepositoryImpl) ListDueBetweenAllUsers(
	ctx context.Context,
	lowScore, highScore int64,
) ([]domain.UpcomingReminder, error) {
	var models []ReminderModel

	result := r.db.WithContext(ctx).
		Where("due_at >= ? AND due_at <= ?", lowScore, highScore).
		Order("due_at ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		slog.Error("failed to find due reminders for all users",
			"low", lowScore,
			"high", highScore,
			"error", result.Error,
		)

		return nil, unavailable(result.Error)
	}

	upcoming := make([]domain.UpcomingReminder, 0, len(models))
	for _, m := range models {
		u, err := m.ToUpcoming()
		if err != nil {
			slog.Warn("skipping unreadable reminder row",
				"reminder_id", m.ID,
				"error", err,
			)

			continue
		}

		upcoming = append(upcoming, u)
	}

	slog.Debug("due reminders found for all users",
		"count", len(upcoming),
		"low", lowScore,
		"high", highScore,
	)

	return upcoming, nil
}

func (r *reminderRepositoryImpl) Remove(ctx context.Context, userID domain.UserID, reminderID domain.ReminderID) (bool, error) {
	slog.Debug("deleting reminder from database",
		"reminder_id", reminderID.String(),
		"user_id", userID.String(),
	)

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reminderID.String(), userID.String()).
		Delete(&ReminderModel{})
	if result.Error != nil {
		slog.Error("failed to delete reminder from database",
			"reminder_id", reminderID.String(),
			"error", result.Error,
		)

		return false, unavailable(result.Error)
	}

	if result.RowsAffected == 0 {
		slog.Debug("reminder not found for deletion",
			"reminder_id", reminderID.String(),
		)

		return false, nil
	}

	return true, nil
}

func (r *reminderRepositoryImpl) RemovePast(ctx context.Context, userID domain.UserID, cutoffScore int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND due_at <= ?", userID.String(), cutoffScore).
		Delete(&ReminderModel{})
	if result.Error != nil {
		slog.Error("failed to delete past reminders",
			"user_id", userID.String(),
			"cutoff", cutoffScore,
			"error", result.Error,
		)

		return 0, unavailable(result.Error)
	}

	slog.Debug("past reminders deleted",
		"user_id", userID.String(),
		"cutoff", cutoffScore,
		"count", result.RowsAffected,
	)

	return result.RowsAffected, nil
}

func toEntities(models []ReminderModel) ([]*domain.Reminder, error) {
	reminders := make([]*domain.Reminder, 0, len(models))
	for _, m := range models {
		reminder, err := m.ToEntity()
		if err != nil {
			slog.Error("failed to convert model to entity",
				"reminder_id", m.ID,
				"error", err,
			)

			return nil, err
		}

		reminders = append(reminders, reminder)
	}

	return reminders, nil
}
