package auth

import (
	"momnt-server/internal/modules/auth/handler"
	"momnt-server/internal/modules/auth/repo"
	"momnt-server/internal/modules/auth/service"
	platformservice "momnt-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, hostStore repo.HostStore) *Module {
	moduleService := service.New(appService, hostStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
