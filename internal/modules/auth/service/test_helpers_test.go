package service

import (
	"testing"

	"momnt-server/internal/config"
	"momnt-server/internal/modules/auth/repo"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/testutils"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	config.Set(config.Config{JWT: config.JWTConfig{Secret: "test_secret", ExpirationHours: 24}})

	gdb := testutils.SetupDB(t)
	return New(platformservice.NewAppService(nil), repo.NewHostRepository(gdb))
}
