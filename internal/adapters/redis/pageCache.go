package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"yatube/internal/config"
)

// KeyPrefix namespaces cached pages.
const KeyPrefix = "yatube:page:"

type PageCacheRedis struct {
	Client *redis.Client
}

func NewPageCacheRedis(client *redis.Client) *PageCacheRedis {
	return &PageCacheRedis{
		Client: client,
	}
}

func (r *PageCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.Client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores body under key until ttl passes. Writes elsewhere never evict it.
func (r *PageCacheRedis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := r.Client.Set(ctx, KeyPrefix+key, body, ttl).Err(); err != nil {
		return err
	}
	config.Logger.Debug("page cached", zap.String("key", KeyPrefix+key), zap.Duration("ttl", ttl))
	return nil
}
