package storage

import (
	"bytes"
	"image"
	"testing"
	"time"

	"momnt-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitImage_ShrinksPreservingAspect(t *testing.T) {
	src := testutils.JPEGBytes(t, 3200, 1200)

	out, err := LimitImage(src, 1600, 1200, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.Equal(t, 1600, out.Width)
	assert.Equal(t, 600, out.Height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1600, cfg.Width)
}

func TestLimitImage_NeverUpscales(t *testing.T) {
	src := testutils.PNGBytes(t, 40, 30)

	out, err := LimitImage(src, 1600, 1200, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)
	assert.Equal(t, 40, out.Width)
	assert.Equal(t, 30, out.Height)
	assert.Equal(t, src, out.Data)
}

func TestLimitImage_KeepsPNG(t *testing.T) {
	src := testutils.PNGBytes(t, 100, 400)

	out, err := LimitImage(src, 80, 60, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)
	assert.LessOrEqual(t, out.Width, 80)
	assert.LessOrEqual(t, out.Height, 60)

	_, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestLimitImage_RejectsGarbage(t *testing.T) {
	_, err := LimitImage([]byte("definitely not an image"), 100, 100, 0)
	assert.Error(t, err)
}

// Verifies that a small payload declaring a huge canvas is refused without
// being decoded.
func TestLimitImage_RejectsOversizedDimensions(t *testing.T) {
	src := testutils.DimensionsOnlyPNG(20000, 20000)
	require.Less(t, len(src), 1024)

	start := time.Now()
	_, err := LimitImage(src, 1600, 1200, 50_000_000)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLimitImage_PixelLimitAllowsSmallerImages(t *testing.T) {
	src := testutils.PNGBytes(t, 100, 100)

	out, err := LimitImage(src, 1600, 1200, 100*100)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)

	_, err = LimitImage(src, 1600, 1200, 100*100-1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
