package service

import (
	"bytes"
	"context"
	"errors"
	"log"
	"time"

	"momnt-server/internal/model"
	"momnt-server/internal/modules/common/media"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
	"momnt-server/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notifyTimeout = 3 * time.Second

// CreateInput carries the fields of a new event. Cover is optional.
type CreateInput struct {
	Title string
	Date  string
	Cover *media.File
}

// Patch lists the mutable event fields; nil means unchanged.
type Patch struct {
	Title *string
	Date  *string
}

func notFound() error {
	return platformservice.NewNotFoundError("Event not found")
}

// Create stores the optional cover image and then the event row.
func (s *Service) Create(ctx context.Context, hostID string, in CreateInput) (*model.Event, error) {
	title, err := s.normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	event := &model.Event{Title: title, Date: date, HostID: hostID}
	if in.Cover != nil {
		url, key, err := s.storeCover(ctx, hostID, *in.Cover)
		if err != nil {
			return nil, err
		}
		event.CoverImageURL = &url
		event.CoverImageKey = key
	}

	if err := s.eventStore.Create(ctx, event); err != nil {
		log.Printf("❌ create event: %v", err)
		if event.CoverImageKey != "" {
			s.deleteObject(event.CoverImageKey)
		}
		return nil, platformservice.NewInternalError("Failed to create event")
	}
	event.FillUploadIDs()
	return event, nil
}

func (s *Service) storeCover(ctx context.Context, hostID string, f media.File) (string, string, error) {
	cfg := s.Config().Upload
	maxBytes := cfg.MaxFileSizeBytes()
	if err := media.Validate(f, maxBytes); err != nil {
		return "", "", err
	}
	data, err := media.ReadAll(f, maxBytes)
	if err != nil {
		return "", "", err
	}
	img, err := storage.LimitImage(data, cfg.CoverMaxWidth, cfg.CoverMaxHeight, cfg.PixelLimit())
	if err != nil {
		return "", "", media.TransformError(f, err)
	}

	key := storage.Key("events", hostID, uuid.NewString()+utils.ExtensionFor(img.ContentType))
	url, err := s.gateway.Put(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType)
	if err != nil {
		log.Printf("❌ store cover image %s: %v", key, err)
		return "", "", platformservice.NewUpstreamError("Failed to store cover image")
	}
	return url, key, nil
}

// ListByHost returns the host's events, newest first.
func (s *Service) ListByHost(ctx context.Context, hostID string) ([]model.Event, error) {
	events, err := s.eventStore.ListByHost(ctx, hostID)
	if err != nil {
		return nil, platformservice.NewInternalError("Failed to load events")
	}
	return events, nil
}

// Get loads an event by ID. Knowing the ID is enough to read it.
func (s *Service) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventStore.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, platformservice.NewInternalError("Failed to load event")
	}
	return event, nil
}

// EnsureExists reports NotFound for unknown event IDs.
func (s *Service) EnsureExists(ctx context.Context, eventID string) error {
	ok, err := s.eventStore.Exists(ctx, eventID)
	if err != nil {
		return platformservice.NewInternalError("Failed to load event")
	}
	if !ok {
		return notFound()
	}
	return nil
}

// Update applies patch to an event owned by hostID.
func (s *Service) Update(ctx context.Context, eventID, hostID string, patch Patch) (*model.Event, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		title, err := s.normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if patch.Date != nil {
		date, err := ParseDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}

	event, err := s.eventStore.UpdateOwned(ctx, eventID, hostID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, platformservice.NewInternalError("Failed to update event")
	}
	return event, nil
}

// Delete removes an owned event together with its uploads, then their stored objects.
func (s *Service) Delete(ctx context.Context, eventID, hostID string) error {
	event, uploads, err := s.eventStore.DeleteOwned(ctx, eventID, hostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound()
		}
		return platformservice.NewInternalError("Failed to delete event")
	}

	for _, u := range uploads {
		s.deleteObject(u.StorageKey)
	}
	if event.CoverImageKey != "" {
		s.deleteObject(event.CoverImageKey)
	}
	s.publish(notify.Message{Type: notify.TypeEventDeleted, EventID: eventID})
	return nil
}

// ListUploads returns the event's uploads, newest first.
func (s *Service) ListUploads(ctx context.Context, eventID string) ([]model.Upload, error) {
	if err := s.EnsureExists(ctx, eventID); err != nil {
		return nil, err
	}
	uploads, err := s.eventStore.ListUploads(ctx, eventID)
	if err != nil {
		return nil, platformservice.NewInternalError("Failed to load uploads")
	}
	return uploads, nil
}

// DeleteUpload removes one upload from an event owned by hostID.
func (s *Service) DeleteUpload(ctx context.Context, eventID, uploadID, hostID string) error {
	upload, err := s.eventStore.DeleteUpload(ctx, eventID, uploadID, hostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("Upload not found")
		}
		return platformservice.NewInternalError("Failed to delete upload")
	}

	s.deleteObject(upload.StorageKey)
	s.publish(notify.Message{Type: notify.TypeUploadDeleted, EventID: eventID, UploadID: uploadID})
	return nil
}

// deleteObject is best-effort; the row is already gone.
func (s *Service) deleteObject(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config().Storage.Timeout())
	defer cancel()
	if err := s.gateway.Delete(ctx, key); err != nil {
		log.Printf("⚠️ delete object %s: %v", key, err)
	}
}

func (s *Service) publish(msg notify.Message) {
	msg.Timestamp = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.Publish(ctx, msg); err != nil {
		log.Printf("⚠️ notify %s for event %s: %v", msg.Type, msg.EventID, err)
	}
}
