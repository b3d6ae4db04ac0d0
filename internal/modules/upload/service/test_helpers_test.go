package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"momnt-server/internal/config"
	"momnt-server/internal/model"
	"momnt-server/internal/modules/common/media"
	"momnt-server/internal/modules/upload/repo"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
	"momnt-server/internal/testutils"

	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	store    repo.UploadStore
	gateway  *testutils.MemoryGateway
	notifier *testutils.RecordingNotifier
	event    *model.Event
}

func setup(t *testing.T) *fixture {
	t.Helper()
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	config.Set(config.Config{
		Storage: config.StorageConfig{TimeoutSeconds: 2},
		Upload:  config.UploadConfig{MaxFiles: 5, MaxFileSizeMB: 10, MaxWidth: 1600, MaxHeight: 1200},
	})

	gdb := testutils.SetupDB(t)
	host := &model.Host{Email: "host@x.com", Password: "x"}
	if err := gdb.Create(host).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}
	event := &model.Event{Title: "party", HostID: host.ID}
	if err := gdb.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}

	return &fixture{
		db:       gdb,
		store:    repo.NewUploadRepository(gdb),
		gateway:  testutils.NewMemoryGateway(),
		notifier: &testutils.RecordingNotifier{},
		event:    event,
	}
}

func (f *fixture) service(gateway storage.Gateway) *Service {
	return New(platformservice.NewAppService(nil), f.store, gateway, f.notifier)
}

func (f *fixture) counts(t *testing.T) (uploads, refs int64) {
	t.Helper()
	f.db.Model(&model.Upload{}).Count(&uploads)
	f.db.Model(&model.EventUpload{}).Where("event_id = ?", f.event.ID).Count(&refs)
	return uploads, refs
}

func jpegs(t *testing.T, n, w, h int) []media.File {
	t.Helper()
	files := make([]media.File, n)
	for i := range files {
		files[i] = media.FromBytes(fmt.Sprintf("photo-%d.jpg", i), "image/jpeg", testutils.JPEGBytes(t, w, h))
	}
	return files
}

// failingStore records nothing and always fails the batch insert.
type failingStore struct {
	repo.UploadStore
}

func (failingStore) CreateBatch(context.Context, []model.Upload) error {
	return errors.New("database is locked")
}
