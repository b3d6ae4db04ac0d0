package service

import (
	"momnt-server/internal/modules/auth/repo"
	platformservice "momnt-server/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	hostStore repo.HostStore
}

func New(appService *platformservice.AppService, hostStore repo.HostStore) *Service {
	return &Service{
		AppService: appService,
		hostStore:  hostStore,
	}
}
