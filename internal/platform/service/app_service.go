package service

import (
	"momnt-server/internal/config"
	"strings"

	"github.com/redis/go-redis/v9"
)

// AppService carries the process-wide dependencies shared by every module service.
type AppService struct {
	redisClient *redis.Client
}

func NewAppService(redisClient *redis.Client) *AppService {
	return &AppService{redisClient: redisClient}
}

// Config returns the current configuration snapshot.
func (s *AppService) Config() config.Config {
	return config.Get()
}

// Redis returns the shared client, or nil when Redis is disabled.
func (s *AppService) Redis() *redis.Client {
	if s == nil {
		return nil
	}
	return s.redisClient
}

// RedisKey joins parts onto the configured key prefix.
func (s *AppService) RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "momnt"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}
