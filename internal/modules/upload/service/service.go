package service

import (
	"momnt-server/internal/modules/upload/repo"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
)

type Service struct {
	*platformservice.AppService
	uploadStore repo.UploadStore
	gateway     storage.Gateway
	notifier    notify.Notifier
}

func New(appService *platformservice.AppService, uploadStore repo.UploadStore, gateway storage.Gateway, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		AppService:  appService,
		uploadStore: uploadStore,
		gateway:     gateway,
		notifier:    notifier,
	}
}
