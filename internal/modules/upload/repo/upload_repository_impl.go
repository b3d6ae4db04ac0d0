package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UploadRepository struct {
	db *gorm.DB
}

func (r *UploadRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateBatch inserts the uploads and appends each one to its event's
// reference list in a single transaction. Appends never rewrite the event
// row, so concurrent batches for one event cannot drop each other's refs.
func (r *UploadRepository) CreateBatch(ctx context.Context, uploads []model.Upload) error {
	if len(uploads) == 0 {
		return nil
	}
	refs := make([]model.EventUpload, 0, len(uploads))
	for _, u := range uploads {
		refs = append(refs, model.EventUpload{EventID: u.EventID, UploadID: u.ID, CreatedAt: u.UploadedAt})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&uploads).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&refs).Error
	})
}
