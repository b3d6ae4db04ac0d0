//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"momnt-server/internal/modules"
	authrepo "momnt-server/internal/modules/auth/repo"
	eventrepo "momnt-server/internal/modules/event/repo"
	systemrepo "momnt-server/internal/modules/system/repo"
	uploadrepo "momnt-server/internal/modules/upload/repo"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/router"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(ctx context.Context, gormDB *gorm.DB) (*Application, func(), error) {
	wire.Build(
		provideRedisClient,
		platformservice.NewAppService,
		authrepo.NewHostRepository,
		eventrepo.NewEventRepository,
		uploadrepo.NewUploadRepository,
		systemrepo.NewSystemRepository,
		provideGateway,
		provideHub,
		provideNotifier,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil, nil
}
