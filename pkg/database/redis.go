package database

import (
	"context"
	"fmt"
	"time"

	"event-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis membuat client Redis untuk rate limiting. Redis bersifat
// opsional; config dengan Addr kosong berarti fitur yang bergantung padanya
// dimatikan oleh caller.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
