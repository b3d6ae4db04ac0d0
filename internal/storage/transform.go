package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image dimensions exceed the pixel limit")
)

// Image is an encoded picture ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// LimitImage decodes data and shrinks it to fit maxW x maxH, preserving the
// aspect ratio. Images already inside the bounds are returned as-is.
// Headers declaring more than maxPixels pixels are rejected before decoding;
// maxPixels <= 0 disables that check.
func LimitImage(data []byte, maxW, maxH, maxPixels int) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	contentType, err := contentTypeFor(format)
	if err != nil {
		return nil, err
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	if maxW <= 0 || maxH <= 0 || (cfg.Width <= maxW && cfg.Height <= maxH) {
		return &Image{Data: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, thumb)
	default:
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	bounds := thumb.Bounds()
	return &Image{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

func contentTypeFor(format string) (string, error) {
	switch format {
	case "jpeg":
		return "image/jpeg", nil
	case "png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
}
