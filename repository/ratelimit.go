package repository

import (
	"context"
	"time"
)

// RateLimiter counts hits per key inside a fixed window. Implementations must
// be safe for concurrent use.
type RateLimiter interface {
	// Hit registers one request for key and returns the total seen inside the
	// current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}
