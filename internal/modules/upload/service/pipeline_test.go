package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"momnt-server/internal/model"
	"momnt-server/internal/modules/common/media"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
	"momnt-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_StoresAndRecordsBatch(t *testing.T) {
	f := setup(t)
	svc := f.service(f.gateway)

	uploads, err := svc.Submit(context.Background(), f.event.ID, jpegs(t, 3, 3200, 2400), "10.0.0.1")
	require.NoError(t, err)
	require.Len(t, uploads, 3)

	keys := f.gateway.Keys()
	require.Len(t, keys, 3)
	for i, u := range uploads {
		assert.Equal(t, f.event.ID, u.EventID)
		assert.Equal(t, "10.0.0.1", u.IPAddress)
		assert.Equal(t, "image/jpeg", u.MimeType)
		assert.True(t, strings.HasPrefix(u.StorageKey, "uploads/"+f.event.ID+"/"), u.StorageKey)
		assert.Equal(t, "/media/"+u.StorageKey, u.FileURL)
		assert.Equal(t, 1600, u.Width)
		assert.Equal(t, 1200, u.Height)
		if i > 0 {
			assert.GreaterOrEqual(t, u.UploadedAt.Sub(uploads[i-1].UploadedAt), time.Millisecond)
		}

		data, ok := f.gateway.Object(u.StorageKey)
		require.True(t, ok)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.LessOrEqual(t, cfg.Width, 1600)
		assert.LessOrEqual(t, cfg.Height, 1200)
	}

	n, refs := f.counts(t)
	assert.EqualValues(t, 3, n)
	assert.EqualValues(t, 3, refs)

	msgs := f.notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.TypeUploadCreated, msgs[0].Type)
	assert.Len(t, msgs[0].Uploads, 3)
}

func TestSubmit_RejectsWholeBatch(t *testing.T) {
	f := setup(t)
	svc := f.service(f.gateway)
	ctx := context.Background()

	oversized := media.FromBytes("big.jpg", "image/jpeg", testutils.JPEGBytes(t, 10, 10))
	oversized.Size = 11 << 20

	cases := []struct {
		name    string
		eventID string
		files   []media.File
		reason  string
	}{
		{"missing event id", "", jpegs(t, 1, 10, 10), ReasonEventIDRequired},
		{"empty batch", f.event.ID, nil, ReasonEmptyBatch},
		{"six files", f.event.ID, jpegs(t, 6, 10, 10), ReasonBatchTooLarge},
		{"gif", f.event.ID, append(jpegs(t, 2, 10, 10), media.FromBytes("a.gif", "image/gif", []byte("GIF89a"))), media.ReasonUnsupportedType},
		{"oversized", f.event.ID, append(jpegs(t, 1, 10, 10), oversized), media.ReasonFileTooLarge},
		{"huge dimensions", f.event.ID, append(jpegs(t, 1, 10, 10), media.FromBytes("huge.png", "image/png", testutils.DimensionsOnlyPNG(20000, 20000))), media.ReasonFileTooLarge},
		{"spoofed content", f.event.ID, append(jpegs(t, 1, 10, 10), media.FromBytes("x.jpg", "image/jpeg", []byte("#!/bin/sh\necho pwned\n"))), media.ReasonInvalidContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.eventID, tc.files, "10.0.0.1")
			require.Error(t, err)
			assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeValidation), "got %v", err)
			assert.True(t, platformservice.IsReason(err, tc.reason), "got %v", err)
		})
	}

	assert.Empty(t, f.gateway.Keys())
	n, refs := f.counts(t)
	assert.Zero(t, n)
	assert.Zero(t, refs)
	assert.Empty(t, f.notifier.Messages())
}

func TestSubmit_UnknownEvent(t *testing.T) {
	f := setup(t)
	_, err := f.service(f.gateway).Submit(context.Background(), "no-such-event", jpegs(t, 1, 10, 10), "10.0.0.1")
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeNotFound))
	assert.Empty(t, f.gateway.Keys())
}

// Verifies that one failed object upload leaves no records and no stored objects.
func TestSubmit_StorageFailureIsAllOrNothing(t *testing.T) {
	f := setup(t)
	var calls atomic.Int32
	f.gateway.Fail = func(string) error {
		if calls.Add(1) == 2 {
			return errors.New("connection reset by peer")
		}
		return nil
	}

	_, err := f.service(f.gateway).Submit(context.Background(), f.event.ID, jpegs(t, 3, 10, 10), "10.0.0.1")
	require.Error(t, err)
	se, ok := platformservice.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, platformservice.ErrorCodeUpstream, se.Code)

	reports, ok := se.Details.([]FileReport)
	require.True(t, ok)
	require.Len(t, reports, 3)
	stored := 0
	for _, r := range reports {
		if r.Stored {
			stored++
			assert.Empty(t, r.Error)
		} else {
			assert.Equal(t, "storage upload failed", r.Error)
		}
	}
	assert.Equal(t, 2, stored)

	assert.Empty(t, f.gateway.Keys())
	assert.Len(t, f.gateway.Deleted(), 3)
	n, refs := f.counts(t)
	assert.Zero(t, n)
	assert.Zero(t, refs)
	assert.Empty(t, f.notifier.Messages())
}

func TestSubmit_StorageTimeout(t *testing.T) {
	f := setup(t)
	f.gateway.Delay = time.Second
	gw := storage.WithTimeout(f.gateway, 50*time.Millisecond)

	start := time.Now()
	_, err := f.service(gw).Submit(context.Background(), f.event.ID, jpegs(t, 2, 10, 10), "10.0.0.1")
	assert.Less(t, time.Since(start), time.Second)
	require.Error(t, err)

	se, _ := platformservice.AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, platformservice.ErrorCodeUpstream, se.Code)
	for _, r := range se.Details.([]FileReport) {
		assert.False(t, r.Stored)
		assert.Equal(t, "storage upload timed out", r.Error)
	}
	assert.Len(t, f.gateway.Deleted(), 2)
	n, _ := f.counts(t)
	assert.Zero(t, n)
}

// lateCommitGateway stores the object but reports a failure for one key, the
// way a provider does when the response is lost after the write landed.
type lateCommitGateway struct {
	*testutils.MemoryGateway
	failKey func(key string) bool
}

func (g lateCommitGateway) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	url, err := g.MemoryGateway.Put(ctx, key, r, size, contentType)
	if err == nil && g.failKey(key) {
		return "", errors.New("connection reset after write")
	}
	return url, err
}

// Verifies that objects written by a Put that reported failure are removed too.
func TestSubmit_FailedPutObjectsAreRemoved(t *testing.T) {
	f := setup(t)
	var calls atomic.Int32
	gw := lateCommitGateway{
		MemoryGateway: f.gateway,
		failKey:       func(string) bool { return calls.Add(1) == 1 },
	}

	_, err := f.service(gw).Submit(context.Background(), f.event.ID, jpegs(t, 3, 10, 10), "10.0.0.1")
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeUpstream), "got %v", err)
	assert.Empty(t, f.gateway.Keys())
	assert.Len(t, f.gateway.Deleted(), 3)
	n, refs := f.counts(t)
	assert.Zero(t, n)
	assert.Zero(t, refs)
}

func TestCheckBatchSize(t *testing.T) {
	f := setup(t)
	svc := f.service(f.gateway)

	assert.True(t, platformservice.IsReason(svc.CheckBatchSize(0), ReasonEmptyBatch))
	assert.NoError(t, svc.CheckBatchSize(1))
	assert.NoError(t, svc.CheckBatchSize(5))
	assert.True(t, platformservice.IsReason(svc.CheckBatchSize(6), ReasonBatchTooLarge))
	assert.EqualValues(t, 10<<20, svc.MaxFileBytes())
}

func TestSubmit_DatabaseFailureRemovesObjects(t *testing.T) {
	f := setup(t)
	svc := New(platformservice.NewAppService(nil), failingStore{f.store}, f.gateway, f.notifier)

	_, err := svc.Submit(context.Background(), f.event.ID, jpegs(t, 2, 10, 10), "10.0.0.1")
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeInternal))
	assert.Empty(t, f.gateway.Keys())
	assert.Len(t, f.gateway.Deleted(), 2)
	assert.Empty(t, f.notifier.Messages())
}

func TestSubmit_NotificationFailureIsIgnored(t *testing.T) {
	f := setup(t)
	f.notifier.Err = errors.New("broker down")

	uploads, err := f.service(f.gateway).Submit(context.Background(), f.event.ID, jpegs(t, 1, 10, 10), "10.0.0.1")
	require.NoError(t, err)
	assert.Len(t, uploads, 1)
}

// Verifies that concurrent batches for one event keep every reference.
func TestSubmit_ConcurrentBatchesKeepAllReferences(t *testing.T) {
	f := setup(t)
	svc := f.service(f.gateway)

	_, err := svc.Submit(context.Background(), f.event.ID, jpegs(t, 3, 10, 10), "10.0.0.1")
	require.NoError(t, err)

	const batches = 4
	inputs := make([][]media.File, batches)
	for i := range inputs {
		inputs[i] = jpegs(t, 2, 10, 10)
	}
	var wg sync.WaitGroup
	errs := make([]error, batches)
	for i := 0; i < batches; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), f.event.ID, inputs[i], "10.0.0.2")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	n, refs := f.counts(t)
	assert.EqualValues(t, 3+batches*2, n)
	assert.EqualValues(t, 3+batches*2, refs)

	var ids []string
	require.NoError(t, f.db.Model(&model.EventUpload{}).Where("event_id = ?", f.event.ID).Pluck("upload_id", &ids).Error)
	var recorded int64
	f.db.Model(&model.Upload{}).Where("id IN ?", ids).Count(&recorded)
	assert.EqualValues(t, len(ids), recorded)
}
