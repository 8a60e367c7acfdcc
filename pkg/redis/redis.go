package redis

import (
	"context"
	"fmt"
	"time"

	"campus-im/config"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// InitRedis connects the client. Presence features degrade gracefully when
// this is never called or fails; callers treat redis as optional.
func InitRedis(cfg config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client = nil
		return fmt.Errorf("redis connect: %w", err)
	}

	return nil
}

// Close shuts the client down.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings redis.
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
