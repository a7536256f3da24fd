package database

import (
	"context"
	"event-slot-wizard/config"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// InitRedis 建立 Redis client；wizard session、庫存與 plan stream 共用
func InitRedis(ctx context.Context, config *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
