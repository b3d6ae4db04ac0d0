package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
)

type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByHost(ctx context.Context, hostID string) ([]model.Event, error)
	UpdateOwned(ctx context.Context, id, hostID string, updates map[string]any) (*model.Event, error)
	DeleteOwned(ctx context.Context, id, hostID string) (*model.Event, []model.Upload, error)
	ListUploads(ctx context.Context, eventID string) ([]model.Upload, error)
	DeleteUpload(ctx context.Context, eventID, uploadID, hostID string) (*model.Upload, error)
}

func NewEventRepository(db *gorm.DB) EventStore {
	return &EventRepository{db: db}
}
