package system

import (
	"momnt-server/internal/modules/system/handler"
	"momnt-server/internal/modules/system/repo"
	"momnt-server/internal/modules/system/service"
	platformservice "momnt-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, systemStore repo.SystemStore) *Module {
	moduleService := service.New(appService, systemStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
