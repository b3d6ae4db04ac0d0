package upload

import (
	"momnt-server/internal/modules/upload/handler"
	"momnt-server/internal/modules/upload/repo"
	"momnt-server/internal/modules/upload/service"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, uploadStore repo.UploadStore, gateway storage.Gateway, notifier notify.Notifier) *Module {
	moduleService := service.New(appService, uploadStore, gateway, notifier)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
