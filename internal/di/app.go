package di

import (
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/router"
)

type Application struct {
	Router     *router.Router
	AppService *platformservice.AppService
	Hub        *notify.Hub
}

func NewApplication(r *router.Router, appService *platformservice.AppService, hub *notify.Hub) *Application {
	return &Application{
		Router:     r,
		AppService: appService,
		Hub:        hub,
	}
}
