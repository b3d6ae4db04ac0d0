package event

import (
	"momnt-server/internal/modules/event/handler"
	"momnt-server/internal/modules/event/repo"
	"momnt-server/internal/modules/event/service"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"

	"github.com/gorilla/websocket"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	eventStore repo.EventStore,
	gateway storage.Gateway,
	notifier notify.Notifier,
	hub *notify.Hub,
	upgrader websocket.Upgrader,
) *Module {
	moduleService := service.New(appService, eventStore, gateway, notifier)
	moduleHandler := handler.New(moduleService, hub, upgrader)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
