package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Upload struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	FileURL    string    `json:"file_url" gorm:"not null"`
	StorageKey string    `json:"-" gorm:"not null;uniqueIndex;size:255"`
	EventID    string    `json:"event_id" gorm:"size:36;not null;index:idx_uploads_event_uploaded,priority:1"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"not null;index:idx_uploads_event_uploaded,priority:2,sort:desc;index:idx_uploads_ip_uploaded,priority:2,sort:desc"`
	IPAddress  string    `json:"ip_address" gorm:"size:64;not null;index:idx_uploads_ip_uploaded,priority:1"`
	FileName   string    `json:"file_name" gorm:"not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:"size:64;not null"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	CreatedAt  time.Time `json:"created_at"`
	Event      Event     `json:"-" gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (u *Upload) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
