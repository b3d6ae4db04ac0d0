package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
)

type UploadStore interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	CreateBatch(ctx context.Context, uploads []model.Upload) error
}

func NewUploadRepository(db *gorm.DB) UploadStore {
	return &UploadRepository{db: db}
}
