package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

// dropIfEmpty removes the user from the users index only when the
// collection is empty at the time the script runs, so a concurrent insert
// can never be hidden from the scanner.
var dropIfEmpty = redis.NewScript(`
if redis.call('ZCARD', KEYS[1]) == 0 then
  redis.call('DEL', KEYS[2])
  return redis.call('SREM', KEYS[3], ARGV[1])
end
return 0
`)

type reminderStore struct {
	client redis.UniversalClient
}

func NewReminderStore(client redis.UniversalClient) domain.ReminderRepository {
	return &reminderStore{
		client: client,
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func (s *reminderStore) Insert(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil || reminder.UserID().IsZero() || !domain.ValidScore(reminder.Score()) {
		return domain.ErrInvalidArgument
	}

	slog.Debug("inserting reminder into redis",
		"reminder_id", reminder.ID().String(),
		"user_id", reminder.UserID().String(),
	)

	member, err := encodeMember(reminder)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	userID := reminder.UserID()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, userKey(userID), redis.Z{
			Score:  float64(reminder.Score()),
			Member: member,
		})
		pipe.HSet(ctx, idsKey(userID), reminder.ID().String(), member)
		pipe.SAdd(ctx, usersKey, userID.String())

		return nil
	})
	if err != nil {
		slog.Error("failed to insert reminder into redis",
			"reminder_id", reminder.ID().String(),
			"user_id", userID.String(),
			"error", err,
		)

		return unavailable(err)
	}

	return nil
}

func (s *reminderStore) ListAll(ctx context.Context, userID domain.UserID) ([]*domain.Reminder, error) {
	zs, err := s.client.ZRangeWithScores(ctx, userKey(userID), 0, -1).Result()
	if err != nil {
		slog.Error("failed to list reminders from redis",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, unavailable(err)
	}

	return decodeAll(userID, zs), nil
}

func (s *reminderStore) ListDueBetween(
	ctx context.Context,
	userID domain.UserID,
	lowScore, highScore int64,
) ([]*domain.Reminder, error) {
	zs, err := s.client.ZRangeByScoreWithScores(ctx, userKey(userID), scoreRange(lowScore, highScore)).Result()
	if err != nil {
		slog.Error("failed to list due reminders from redis",
			"user_id", userID.String(),
			"low", lowScore,
			"high", highScore,
			"error", err,
		)

		return nil, unavailable(err)
	}

	return decodeAll(userID, zs), nil
}

// ListDueBetweenAllUsers walks the users index rather than the keyspace and
// issues every per-user range in one pipeline round trip.
func (s *reminderStore) ListDueBetweenAllUsers(
	ctx context.Context,
	lowScore, highScore int64,
) ([]domain.UpcomingReminder, error) {
	users, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		slog.Error("failed to read users index from redis",
			"error", err,
		)

		return nil, unavailable(err)
	}

	if len(users) == 0 {
		return nil, nil
	}

	rng := scoreRange(lowScore, highScore)
	cmds := make([]*redis.ZSliceCmd, 0, len(users))
	userIDs := make([]domain.UserID, 0, len(users))

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, u := range users {
			userID, err := domain.UserIDFromString(u)
			if err != nil {
				slog.Warn("skipping malformed user in index",
					"user_id", u,
				)

				continue
			}

			userIDs = append(userIDs, userID)
			cmds = append(cmds, pipe.ZRangeByScoreWithScores(ctx, userKey(userID), rng))
		}

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Error("failed to list due reminders for all users",
			"users", len(users),
			"error", err,
		)

		return nil, unavailable(err)
	}

	upcoming := make([]domain.UpcomingReminder, 0)
	for i, cmd := range cmds {
		for _, r := range decodeAll(userIDs[i], cmd.Val()) {
			upcoming = append(upcoming, r.ToUpcoming())
		}
	}

	slog.Debug("due reminders listed for all users",
		"users", len(userIDs),
		"count", len(upcoming),
		"low", lowScore,
		"high", highScore,
	)

	return upcoming, nil
}

func (s *reminderStore) Remove(ctx context.Context, userID domain.UserID, reminderID domain.ReminderID) (bool, error) {
	slog.Debug("removing reminder from redis",
		"reminder_id", reminderID.String(),
		"user_id", userID.String(),
	)

	member, err := s.client.HGet(ctx, idsKey(userID), reminderID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		slog.Error("failed to look up reminder in redis",
			"reminder_id", reminderID.String(),
			"user_id", userID.String(),
			"error", err,
		)

		return false, unavailable(err)
	}

	var zrem *redis.IntCmd

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		zrem = pipe.ZRem(ctx, userKey(userID), member)
		pipe.HDel(ctx, idsKey(userID), reminderID.String())

		return nil
	})
	if err != nil {
		slog.Error("failed to remove reminder from redis",
			"reminder_id", reminderID.String(),
			"user_id", userID.String(),
			"error", err,
		)

		return false, unavailable(err)
	}

	removed := zrem.Val() > 0
	if removed {
		s.dropUserIfEmpty(ctx, userID)
	}

	return removed, nil
}

func (s *reminderStore) RemovePast(ctx context.Context, userID domain.UserID, cutoffScore int64) (int64, error) {
	members, err := s.client.ZRangeByScore(ctx, userKey(userID), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoffScore, 10),
	}).Result()
	if err != nil {
		slog.Error("failed to read past reminders from redis",
			"user_id", userID.String(),
			"cutoff", cutoffScore,
			"error", err,
		)

		return 0, unavailable(err)
	}

	if len(members) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(members))
	zmembers := make([]any, 0, len(members))

	for _, m := range members {
		zmembers = append(zmembers, m)

		id, err := reminderIDOf(m)
		if err != nil {
			slog.Warn("past reminder member has no readable ID",
				"user_id", userID.String(),
				"error", err,
			)

			continue
		}

		ids = append(ids, id)
	}

	var zrem *redis.IntCmd

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		zrem = pipe.ZRem(ctx, userKey(userID), zmembers...)
		if len(ids) > 0 {
			pipe.HDel(ctx, idsKey(userID), ids...)
		}

		return nil
	})
	if err != nil {
		slog.Error("failed to remove past reminders from redis",
			"user_id", userID.String(),
			"cutoff", cutoffScore,
			"error", err,
		)

		return 0, unavailable(err)
	}

	s.dropUserIfEmpty(ctx, userID)

	slog.Debug("past reminders removed from redis",
		"user_id", userID.String(),
		"cutoff", cutoffScore,
		"count", zrem.Val(),
	)

	return zrem.Val(), nil
}

// dropUserIfEmpty failing only leaves a stale index entry, which costs one
// empty range per scan.
func (s *reminderStore) dropUserIfEmpty(ctx context.Context, userID domain.UserID) {
	err := dropIfEmpty.Run(ctx, s.client,
		[]string{userKey(userID), idsKey(userID), usersKey},
		userID.String(),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("failed to prune users index",
			"user_id", userID.String(),
			"error", err,
		)
	}
}

func scoreRange(lowScore, highScore int64) *redis.ZRangeBy {
	return &redis.ZRangeBy{
		Min: strconv.FormatInt(lowScore, 10),
		Max: strconv.FormatInt(highScore, 10),
	}
}

func decodeAll(userID domain.UserID, zs []redis.Z) []*domain.Reminder {
	reminders := make([]*domain.Reminder, 0, len(zs))

	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		r, err := decodeMember(userID, member, z.Score)
		if err != nil {
			slog.Warn("skipping undecodable reminder",
				"user_id", userID.String(),
				"member", truncate(member, 64),
				"error", err,
			)

			continue
		}

		reminders = append(reminders, r)
	}

	return reminders
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return strings.ToValidUTF8(s[:n], "")
}
