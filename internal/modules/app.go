package modules

import (
	"momnt-server/internal/modules/auth"
	authrepo "momnt-server/internal/modules/auth/repo"
	"momnt-server/internal/modules/event"
	eventrepo "momnt-server/internal/modules/event/repo"
	"momnt-server/internal/modules/system"
	systemrepo "momnt-server/internal/modules/system/repo"
	"momnt-server/internal/modules/upload"
	uploadrepo "momnt-server/internal/modules/upload/repo"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
)

type AppModules struct {
	Auth   *auth.Module
	Event  *event.Module
	Upload *upload.Module
	System *system.Module
}

// New composes the modules. hub may be nil, which disables the live feed;
// notifier receives every upload notification and should include hub.
func New(
	appService *platformservice.AppService,
	hostStore authrepo.HostStore,
	eventStore eventrepo.EventStore,
	uploadStore uploadrepo.UploadStore,
	systemStore systemrepo.SystemStore,
	gateway storage.Gateway,
	hub *notify.Hub,
	notifier notify.Notifier,
) *AppModules {
	upgrader := notify.NewUpgrader(appService.Config().CORS.AllowOrigins)

	return &AppModules{
		Auth:   auth.New(appService, hostStore),
		Event:  event.New(appService, eventStore, gateway, notifier, hub, upgrader),
		Upload: upload.New(appService, uploadStore, gateway, notifier),
		System: system.New(appService, systemStore),
	}
}
