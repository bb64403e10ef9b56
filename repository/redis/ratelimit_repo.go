package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/presenta/backend/repository"
)

type rateLimiter struct {
	client *redislib.Client
	prefix string
}

// NewRateLimiter creates a Redis-backed fixed-window hit counter.
func NewRateLimiter(client *redislib.Client) repository.RateLimiter {
	return &rateLimiter{
		client: client,
		prefix: "ratelimit:",
	}
}

// Hit increments the window counter for key. The expiry is set atomically with
// the first increment so abandoned keys clean themselves up.
func (r *rateLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if window <= 0 {
		window = time.Minute
	}

	redisKey := r.key(key, window)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *rateLimiter) key(key string, window time.Duration) string {
	bucket := time.Now().Unix() / int64(window.Seconds())
	return fmt.Sprintf("%s%s:%d", r.prefix, key, bucket)
}
