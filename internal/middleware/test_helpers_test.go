package middleware

import (
	"testing"

	"momnt-server/internal/config"
	"momnt-server/internal/platform/service"
)

// withConfig installs a config snapshot for the duration of the test.
func withConfig(t *testing.T, mutate func(cfg *config.Config)) *service.AppService {
	t.Helper()
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })

	cfg := config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, WindowMinutes: 15, GlobalMax: 100, UploadMax: 10},
		Upload:    config.UploadConfig{MaxFiles: 5, MaxFileSizeMB: 10},
		Redis:     config.RedisConfig{Prefix: "test"},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	config.Set(cfg)
	return service.NewAppService(nil)
}
