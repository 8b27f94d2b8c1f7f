package cache

import (
	"context"
	"time"
)

// PageCache stores rendered pages for a limited time.
type PageCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}
