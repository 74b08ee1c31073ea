package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"messaging-service/internal/config"
)

// NewRedis connects to Redis using the configured URL. The service runs
// without Redis (the in-process registry stays authoritative for presence),
// so callers may treat a connection failure as non-fatal.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	url := cfg.Redis.URL
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
