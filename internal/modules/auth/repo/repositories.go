package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
)

type HostStore interface {
	FindByID(ctx context.Context, id string) (*model.Host, error)
	FindByEmail(ctx context.Context, email string) (*model.Host, error)
	Create(ctx context.Context, host *model.Host) error
}

func NewHostRepository(db *gorm.DB) HostStore {
	return &HostRepository{db: db}
}
