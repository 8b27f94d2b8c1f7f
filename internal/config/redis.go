package config

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient is the shared redis client set by InitRedis.
var RedisClient *redis.Client

var embeddedRedis *miniredis.Miniredis

// InitRedis connects to redis. In dev, when no REDIS_ADDR is configured, an
// embedded miniredis server backs the client instead.
func InitRedis(ctx context.Context, s *Settings) (*redis.Client, error) {
	addr := s.RedisAddr
	if addr == "" && s.IsDev() {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("starting embedded redis: %w", err)
		}
		embeddedRedis = mr
		addr = mr.Addr()
		Logger.Info("No REDIS_ADDR set, using embedded redis", zap.String("addr", addr))
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	// check the connection before serving anything from the cache
	pong, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	Logger.Info("✅ Connected to Redis", zap.String("addr", addr), zap.String("ping", pong))
	return RedisClient, nil
}

// CloseRedis closes the client and the embedded server, if any.
func CloseRedis() error {
	var err error
	if RedisClient != nil {
		err = RedisClient.Close()
	}
	if embeddedRedis != nil {
		embeddedRedis.Close()
	}
	return err
}
