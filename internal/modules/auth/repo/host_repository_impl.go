package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
)

type HostRepository struct {
	db *gorm.DB
}

func (r *HostRepository) FindByID(ctx context.Context, id string) (*model.Host, error) {
	var host model.Host
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&host).Error; err != nil {
		return nil, err
	}
	return &host, nil
}

func (r *HostRepository) FindByEmail(ctx context.Context, email string) (*model.Host, error) {
	var host model.Host
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&host).Error; err != nil {
		return nil, err
	}
	return &host, nil
}

func (r *HostRepository) Create(ctx context.Context, host *model.Host) error {
	return r.db.WithContext(ctx).Create(host).Error
}
