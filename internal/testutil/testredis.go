package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/redisstore"
)

type TestRedis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
	Store  domain.ReminderRepository
}

// SetupTestRedis starts an in-memory Redis server that is shut down when the
// test ends.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return &TestRedis{
		Server: server,
		Client: client,
		Store:  redisstore.NewReminderStore(client),
	}
}
