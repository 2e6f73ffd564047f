package infra

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when no REDIS_URL is configured; callers fall back to
// the in-process lock store in that case.
func InitRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	return redis.NewClient(opts)
}
