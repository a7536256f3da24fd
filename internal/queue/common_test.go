package queue_test

import (
	"os"
	"testing"

	"event-slot-wizard/internal/testutil"

	"github.com/redis/go-redis/v9"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err == nil {
		testRdb = rdb
		defer cleanup()
	}
	code := m.Run()
	os.Exit(code)
}

// requireRedis 測試 Redis 未啟動時略過整合測試
func requireRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testRdb == nil {
		t.Skip("test redis not available")
	}
	return testRdb
}
