package app

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/pubsub"
)

type reminderUseCaseImpl struct {
	repo      domain.ReminderRepository
	publisher pubsub.Publisher
}

// NewReminderUseCase accepts a nil publisher, in which case deletions are
// not announced.
func NewReminderUseCase(repo domain.ReminderRepository, publisher pubsub.Publisher) ReminderUseCase {
	return &reminderUseCaseImpl{
		repo:      repo,
		publisher: publisher,
	}
}

func (uc *reminderUseCaseImpl) CreateReminder(ctx context.Context, input CreateReminderInput) (ReminderOutput, error) {
	slog.DebugContext(ctx, "creating reminder",
		"user_id", input.UserID,
		"due_at", input.DueAt,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReminderOutput{}, NewValidationError("user_id", err.Error())
	}

	reminder, err := domain.NewReminder(userID, input.Title, input.Description, input.DueAt)
	if err != nil {
		return ReminderOutput{}, toValidationError(err)
	}

	if err := uc.repo.Insert(ctx, reminder); err != nil {
		slog.ErrorContext(ctx, "failed to insert reminder",
			"error", err,
			"user_id", input.UserID,
			"reminder_id", reminder.ID().String(),
		)

		return ReminderOutput{}, storeError(err)
	}

	slog.InfoContext(ctx, "reminder created",
		"event", "reminder.created",
		"user_id", input.UserID,
		"reminder_id", reminder.ID().String(),
		"due_at", reminder.DueAt(),
	)

	return FromEntity(reminder), nil
}

func (uc *reminderUseCaseImpl) ListReminders(ctx context.Context, input ListRemindersInput) (RemindersOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return RemindersOutput{}, NewValidationError("user_id", err.Error())
	}

	reminders, err := uc.repo.ListAll(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reminders",
			"error", err,
			"user_id", input.UserID,
		)

		return RemindersOutput{}, storeError(err)
	}

	slog.DebugContext(ctx, "reminders retrieved",
		"user_id", input.UserID,
		"count", len(reminders),
	)

	return FromEntities(reminders), nil
}

func (uc *reminderUseCaseImpl) ListUpcoming(ctx context.Context, input ListUpcomingInput) (RemindersOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return RemindersOutput{}, NewValidationError("user_id", err.Error())
	}

	from := input.From
	if from.IsZero() {
		from = time.Now()
	}

	reminders, err := uc.repo.ListDueBetween(ctx, userID, domain.ScoreOf(from), math.MaxInt64)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list upcoming reminders",
			"error", err,
			"user_id", input.UserID,
			"from", from,
		)

		return RemindersOutput{}, storeError(err)
	}

	slog.DebugContext(ctx, "upcoming reminders retrieved",
		"user_id", input.UserID,
		"from", from,
		"count", len(reminders),
	)

	return FromEntities(reminders), nil
}

func (uc *reminderUseCaseImpl) DeleteReminder(ctx context.Context, input DeleteReminderInput) (bool, error) {
	slog.DebugContext(ctx, "deleting reminder",
		"user_id", input.UserID,
		"reminder_id", input.ReminderID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return false, NewValidationError("user_id", err.Error())
	}

	// Reminder ids are opaque to callers; one that cannot exist is not found.
	reminderID, err := domain.ReminderIDFromString(input.ReminderID)
	if err != nil {
		slog.InfoContext(ctx, "reminder not found for deletion (malformed id)",
			"user_id", input.UserID,
			"reminder_id", input.ReminderID,
		)

		return false, nil
	}

	removed, err := uc.repo.Remove(ctx, userID, reminderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete reminder",
			"error", err,
			"user_id", input.UserID,
			"reminder_id", input.ReminderID,
		)

		return false, storeError(err)
	}

	if !removed {
		slog.InfoContext(ctx, "reminder not found for deletion (idempotency)",
			"user_id", input.UserID,
			"reminder_id", input.ReminderID,
		)

		return false, nil
	}

	if uc.publisher != nil {
		event := &pubsub.ReminderCancelledEvent{
			ReminderID:  reminderID.String(),
			UserID:      userID.String(),
			CancelledAt: time.Now(),
		}
		if pubErr := uc.publisher.PublishReminderCancelled(ctx, event); pubErr != nil {
			slog.ErrorContext(ctx, "failed to publish reminder cancelled event",
				"reminder_id", input.ReminderID,
				"error", pubErr.Error(),
			)
		}
	}

	slog.InfoContext(ctx, "reminder deleted",
		"event", "reminder.deleted",
		"user_id", input.UserID,
		"reminder_id", input.ReminderID,
	)

	return true, nil
}

func (uc *reminderUseCaseImpl) SweepPastReminders(ctx context.Context, input SweepPastRemindersInput) (int64, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return 0, NewValidationError("user_id", err.Error())
	}

	if input.Before.IsZero() {
		return 0, NewValidationError("before", "cutoff time is required")
	}

	n, err := uc.repo.RemovePast(ctx, userID, domain.ScoreOf(input.Before))
	if err != nil {
		slog.ErrorContext(ctx, "failed to sweep past reminders",
			"error", err,
			"user_id", input.UserID,
			"before", input.Before,
		)

		return 0, storeError(err)
	}

	slog.InfoContext(ctx, "past reminders swept",
		"event", "reminder.swept",
		"user_id", input.UserID,
		"before", input.Before,
		"count", n,
	)

	return n, nil
}
