package service

import (
	"context"
	"fmt"
	"log"
	"momnt-server/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis when enabled. A nil client means the
// in-memory fallbacks should be used.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis unavailable, falling back to in-memory counters: %v", err)
		return nil
	}

	log.Printf("✅ Redis connected: %s (db=%d)", cfg.Addr, cfg.DB)
	return client
}

// CloseRedisClient closes client if it is non-nil.
func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
