package handler

import (
	"testing"

	"momnt-server/internal/config"
	"momnt-server/internal/modules/auth/repo"
	authservice "momnt-server/internal/modules/auth/service"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/testutils"

	"gorm.io/gorm"
)

var (
	testService *authservice.Service
	testHandler *Handler
)

func setupTestDB(t *testing.T) *gorm.DB {
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	config.Set(config.Config{JWT: config.JWTConfig{Secret: "test_secret", ExpirationHours: 24}})

	gdb := testutils.SetupDB(t)
	testService = authservice.New(platformservice.NewAppService(nil), repo.NewHostRepository(gdb))
	testHandler = New(testService)
	return gdb
}
