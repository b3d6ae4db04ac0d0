package repo

import (
	"context"
	"momnt-server/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func withUploadRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("UploadRefs", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC").Order("upload_id ASC")
	})
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := withUploadRefs(r.db.WithContext(ctx)).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	event.FillUploadIDs()
	return &event, nil
}

func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EventRepository) ListByHost(ctx context.Context, hostID string) ([]model.Event, error) {
	var events []model.Event
	err := withUploadRefs(r.db.WithContext(ctx)).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].FillUploadIDs()
	}
	return events, nil
}

// UpdateOwned applies updates to the event only when hostID owns it.
func (r *EventRepository) UpdateOwned(ctx context.Context, id, hostID string, updates map[string]any) (*model.Event, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Where("id = ? AND host_id = ?", id, hostID).First(&event).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&event).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// DeleteOwned removes the event with its uploads and references in one
// transaction and returns what was removed.
func (r *EventRepository) DeleteOwned(ctx context.Context, id, hostID string) (*model.Event, []model.Upload, error) {
	var event model.Event
	var uploads []model.Upload
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND host_id = ?", id, hostID).First(&event).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Find(&uploads).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.EventUpload{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.Upload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &event, uploads, nil
}

func (r *EventRepository) ListUploads(ctx context.Context, eventID string) ([]model.Upload, error) {
	var uploads []model.Upload
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("uploaded_at DESC").
		Order("id DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// DeleteUpload removes one upload and its reference when hostID owns the event.
func (r *EventRepository) DeleteUpload(ctx context.Context, eventID, uploadID, hostID string) (*model.Upload, error) {
	var upload model.Upload
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Where("id = ? AND host_id = ?", eventID, hostID).First(&event).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ? AND event_id = ?", uploadID, eventID).First(&upload).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ? AND upload_id = ?", eventID, uploadID).Delete(&model.EventUpload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&upload).Error
	})
	if err != nil {
		return nil, err
	}
	return &upload, nil
}
