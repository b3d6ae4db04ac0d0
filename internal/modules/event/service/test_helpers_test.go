package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"momnt-server/internal/config"
	"momnt-server/internal/model"
	"momnt-server/internal/modules/event/repo"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/testutils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	gateway  *testutils.MemoryGateway
	notifier *testutils.RecordingNotifier
	host     *model.Host
	other    *model.Host
}

func setup(t *testing.T) *fixture {
	t.Helper()
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	config.Set(config.Config{
		Storage: config.StorageConfig{TimeoutSeconds: 2},
		Upload: config.UploadConfig{
			MaxFiles: 5, MaxFileSizeMB: 10,
			MaxWidth: 1600, MaxHeight: 1200,
			CoverMaxWidth: 800, CoverMaxHeight: 600,
		},
	})

	gdb := testutils.SetupDB(t)
	f := &fixture{
		db:       gdb,
		gateway:  testutils.NewMemoryGateway(),
		notifier: &testutils.RecordingNotifier{},
		host:     &model.Host{Email: "host@x.com", Password: "x"},
		other:    &model.Host{Email: "other@x.com", Password: "x"},
	}
	if err := gdb.Create(f.host).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}
	if err := gdb.Create(f.other).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}
	f.svc = New(platformservice.NewAppService(nil), repo.NewEventRepository(gdb), f.gateway, f.notifier)
	return f
}

func (f *fixture) createEvent(t *testing.T, title string) *model.Event {
	t.Helper()
	event, err := f.svc.Create(context.Background(), f.host.ID, CreateInput{Title: title, Date: "2024-06-01"})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

// addUpload stores an object and its rows the way a committed batch would.
func (f *fixture) addUpload(t *testing.T, eventID string, at time.Time) model.Upload {
	t.Helper()
	u := model.Upload{EventID: eventID, UploadedAt: at, IPAddress: "10.0.0.1", FileName: "a.jpg", MimeType: "image/jpeg"}
	u.ID = uuid.NewString()
	u.StorageKey = "uploads/" + eventID + "/" + u.ID + ".jpg"
	u.FileURL = "/media/" + u.StorageKey
	if err := f.db.Create(&u).Error; err != nil {
		t.Fatalf("create upload: %v", err)
	}
	if err := f.db.Create(&model.EventUpload{EventID: eventID, UploadID: u.ID, CreatedAt: at}).Error; err != nil {
		t.Fatalf("create ref: %v", err)
	}
	if _, err := f.gateway.Put(context.Background(), u.StorageKey, strings.NewReader("jpeg"), 4, "image/jpeg"); err != nil {
		t.Fatalf("put object: %v", err)
	}
	return u
}
