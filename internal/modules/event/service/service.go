package service

import (
	"momnt-server/internal/modules/event/repo"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	*platformservice.AppService
	eventStore repo.EventStore
	gateway    storage.Gateway
	notifier   notify.Notifier
	validate   *validator.Validate
}

func New(appService *platformservice.AppService, eventStore repo.EventStore, gateway storage.Gateway, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		AppService: appService,
		eventStore: eventStore,
		gateway:    gateway,
		notifier:   notifier,
		validate:   validator.New(),
	}
}
