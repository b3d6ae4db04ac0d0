package repo

import (
	"context"

	"gorm.io/gorm"
)

type SystemStore interface {
	Ping(ctx context.Context) error
}

func NewSystemRepository(db *gorm.DB) SystemStore {
	return &SystemRepository{db: db}
}
