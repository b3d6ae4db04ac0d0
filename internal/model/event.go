package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Event struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	Title         string         `json:"title" gorm:"size:100;not null"`
	Date          datatypes.Date `json:"date" gorm:"not null"`
	HostID        string         `json:"host_id" gorm:"size:36;not null;index:idx_events_host_created,priority:1"`
	CoverImageURL *string        `json:"cover_image_url"`
	CoverImageKey string         `json:"-"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index:idx_events_host_created,priority:2,sort:desc"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Host          Host           `json:"-" gorm:"foreignKey:HostID;references:ID"`
	UploadRefs    []EventUpload  `json:"-" gorm:"foreignKey:EventID"`

	// UploadIDs mirrors UploadRefs for API responses.
	UploadIDs   []string `json:"uploads" gorm:"-"`
	UploadCount int      `json:"upload_count" gorm:"-"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// FillUploadIDs projects the preloaded reference list onto the JSON fields.
func (e *Event) FillUploadIDs() {
	ids := make([]string, 0, len(e.UploadRefs))
	for _, ref := range e.UploadRefs {
		ids = append(ids, ref.UploadID)
	}
	e.UploadIDs = ids
	e.UploadCount = len(ids)
}

// EventUpload is one entry of an event's upload-reference list. The composite
// primary key makes appends idempotent.
type EventUpload struct {
	EventID   string    `gorm:"primaryKey;size:36"`
	UploadID  string    `gorm:"primaryKey;size:36"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
