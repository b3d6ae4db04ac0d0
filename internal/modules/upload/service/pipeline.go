package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"momnt-server/internal/model"
	"momnt-server/internal/modules/common/media"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
	"momnt-server/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Reasons reported by Submit besides the per-file media reasons.
const (
	ReasonEventIDRequired = "event_id_required"
	ReasonEmptyBatch      = "empty_batch"
	ReasonBatchTooLarge   = "batch_too_large"
)

const (
	defaultMaxFiles     = 5
	defaultMaxFileBytes = 10 << 20
	notifyTimeout       = 3 * time.Second
)

// FileReport is the per-file outcome attached to a failed batch.
type FileReport struct {
	FileName string `json:"file_name"`
	Stored   bool   `json:"stored"`
	Error    string `json:"error,omitempty"`
}

type preparedFile struct {
	id   string
	key  string
	name string
	size int64
	img  *storage.Image
}

type storeResult struct {
	url string
	err error
}

// MaxFiles is the largest batch Submit accepts.
func (s *Service) MaxFiles() int {
	if n := s.Config().Upload.MaxFiles; n > 0 {
		return n
	}
	return defaultMaxFiles
}

// MaxFileBytes is the largest single file Submit accepts.
func (s *Service) MaxFileBytes() int64 {
	if n := s.Config().Upload.MaxFileSizeBytes(); n > 0 {
		return n
	}
	return defaultMaxFileBytes
}

// CheckBatchSize rejects empty batches and batches above MaxFiles.
func (s *Service) CheckBatchSize(n int) error {
	if n == 0 {
		return platformservice.NewReasonError(platformservice.ErrorCodeValidation, ReasonEmptyBatch, "No files uploaded")
	}
	if maxFiles := s.MaxFiles(); n > maxFiles {
		return platformservice.NewReasonError(platformservice.ErrorCodeValidation, ReasonBatchTooLarge,
			fmt.Sprintf("At most %d files can be uploaded at once", maxFiles))
	}
	return nil
}

// Submit validates a guest batch, stores every file and records the batch
// atomically. Either every file of the batch is recorded or none is.
func (s *Service) Submit(ctx context.Context, eventID string, files []media.File, clientAddress string) ([]model.Upload, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, platformservice.NewReasonError(platformservice.ErrorCodeValidation, ReasonEventIDRequired, "Event ID is required")
	}

	if err := s.CheckBatchSize(len(files)); err != nil {
		return nil, err
	}
	maxFiles := s.MaxFiles()
	for _, f := range files {
		if err := media.Validate(f, s.MaxFileBytes()); err != nil {
			return nil, err
		}
	}

	exists, err := s.uploadStore.EventExists(ctx, eventID)
	if err != nil {
		log.Printf("❌ upload: lookup event %s: %v", eventID, err)
		return nil, platformservice.NewInternalError("Upload failed, please try again later")
	}
	if !exists {
		return nil, platformservice.NewNotFoundError("Event not found")
	}

	prepared, err := s.prepare(ctx, eventID, files, maxFiles)
	if err != nil {
		return nil, err
	}

	results := s.store(ctx, prepared, maxFiles)
	if reports, failed := report(prepared, results); failed {
		s.cleanup(ctx, prepared)
		return nil, platformservice.WithDetails(
			platformservice.NewUpstreamError("Failed to store uploaded files"), reports)
	}

	batchTime := time.Now().UTC().Truncate(time.Millisecond)
	uploads := make([]model.Upload, len(prepared))
	for i, p := range prepared {
		uploads[i] = model.Upload{
			ID:         p.id,
			FileURL:    results[i].url,
			StorageKey: p.key,
			EventID:    eventID,
			// millisecond steps survive datetime(3) columns
			UploadedAt: batchTime.Add(time.Duration(i) * time.Millisecond),
			IPAddress:  clientAddress,
			FileName:   p.name,
			FileSize:   p.size,
			MimeType:   p.img.ContentType,
			Width:      p.img.Width,
			Height:     p.img.Height,
		}
	}

	if err := s.uploadStore.CreateBatch(ctx, uploads); err != nil {
		log.Printf("❌ upload: record batch for event %s: %v", eventID, err)
		s.cleanup(ctx, prepared)
		return nil, platformservice.NewInternalError("Upload failed, please try again later")
	}

	s.publish(ctx, notify.Message{Type: notify.TypeUploadCreated, EventID: eventID, Uploads: uploads})
	return uploads, nil
}

// prepare reads and bounds every image before anything is stored.
func (s *Service) prepare(ctx context.Context, eventID string, files []media.File, limit int) ([]preparedFile, error) {
	cfg := s.Config().Upload
	prepared := make([]preparedFile, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			data, err := media.ReadAll(f, s.MaxFileBytes())
			if err != nil {
				if _, ok := platformservice.AsServiceError(err); ok {
					return err
				}
				return platformservice.NewReasonError(platformservice.ErrorCodeValidation, media.ReasonInvalidContent,
					f.DisplayName()+": cannot read file")
			}
			img, err := storage.LimitImage(data, cfg.MaxWidth, cfg.MaxHeight, cfg.PixelLimit())
			if err != nil {
				return media.TransformError(f, err)
			}

			id := uuid.NewString()
			prepared[i] = preparedFile{
				id:   id,
				key:  storage.Key("uploads", eventID, id+utils.ExtensionFor(img.ContentType)),
				name: f.DisplayName(),
				size: f.Size,
				img:  img,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prepared, nil
}

// store uploads every file concurrently and waits for all of them to settle.
// A failing upload does not cancel its siblings.
func (s *Service) store(ctx context.Context, prepared []preparedFile, limit int) []storeResult {
	results := make([]storeResult, len(prepared))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, p := range prepared {
		i, p := i, p
		g.Go(func() error {
			url, err := s.gateway.Put(ctx, p.key, bytes.NewReader(p.img.Data), int64(len(p.img.Data)), p.img.ContentType)
			results[i] = storeResult{url: url, err: err}
			return err
		})
	}
	_ = g.Wait()
	return results
}

func report(prepared []preparedFile, results []storeResult) ([]FileReport, bool) {
	reports := make([]FileReport, len(prepared))
	failed := false
	for i, p := range prepared {
		reports[i] = FileReport{FileName: p.name, Stored: results[i].err == nil}
		if err := results[i].err; err != nil {
			failed = true
			reports[i].Error = "storage upload failed"
			if errors.Is(err, context.DeadlineExceeded) {
				reports[i].Error = "storage upload timed out"
			}
			log.Printf("❌ upload: store %s: %v", p.key, err)
		}
	}
	return reports, failed
}

// cleanup removes every object of a failed batch. Keys whose Put reported an
// error are included: a timed-out Put may still complete on the provider, and
// deleting a missing key is not an error.
func (s *Service) cleanup(ctx context.Context, prepared []preparedFile) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.Config().Storage.Timeout())
	defer cancel()

	for _, p := range prepared {
		if err := s.gateway.Delete(ctx, p.key); err != nil {
			log.Printf("⚠️ upload: orphaned object %s: %v", p.key, err)
		}
	}
}

func (s *Service) publish(ctx context.Context, msg notify.Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	msg.Timestamp = time.Now().UTC()
	if err := s.notifier.Publish(ctx, msg); err != nil {
		log.Printf("⚠️ notify %s for event %s: %v", msg.Type, msg.EventID, err)
	}
}
