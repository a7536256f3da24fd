package testutil

import (
	"context"
	"fmt"
	"time"

	"event-slot-wizard/config"
	"event-slot-wizard/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 3 * time.Second

// SetupDatabase 連線測試 DB 並執行 migration；測試 DB 未啟動時回傳 error，由呼叫端 Skip
func SetupDatabase() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	if err := database.Migrate(pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	return pool, pool.Close, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試(session、庫存、queue)
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	cleanup := func() { rdb.Close() }
	return rdb, cleanup, nil
}
