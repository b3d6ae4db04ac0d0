package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"momnt-server/internal/platform/service"
	"momnt-server/internal/storage"
	"momnt-server/internal/utils"
	"path/filepath"
	"strings"
)

// Reasons reported for rejected image files.
const (
	ReasonUnsupportedType = "unsupported_type"
	ReasonFileTooLarge    = "file_too_large"
	ReasonInvalidContent  = "invalid_content"
)

const maxNameLength = 255

// File is one submitted image. Open may be called more than once.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (multipart.File, error)
}

// FromHeader wraps a parsed multipart file part.
func FromHeader(fh *multipart.FileHeader) File {
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        fh.Open,
	}
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// FromBytes builds a File over an in-memory payload.
func FromBytes(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (multipart.File, error) {
			return memFile{bytes.NewReader(data)}, nil
		},
	}
}

// DisplayName returns the base name of the client file name, bounded in length.
func (f File) DisplayName() string {
	name := filepath.Base(strings.ReplaceAll(f.Name, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name
}

// Validate checks declared type, size and sniffed content. maxBytes <= 0 disables the size check.
func Validate(f File, maxBytes int64) error {
	if utils.CanonicalImageType(f.ContentType) == "" {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonUnsupportedType,
			fmt.Sprintf("%s: only JPEG and PNG images are allowed", f.DisplayName()))
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonFileTooLarge,
			fmt.Sprintf("%s: file exceeds %dMB", f.DisplayName(), maxBytes>>20))
	}
	if f.Open == nil {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonInvalidContent,
			fmt.Sprintf("%s: file is empty", f.DisplayName()))
	}

	src, err := f.Open()
	if err != nil {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonInvalidContent,
			fmt.Sprintf("%s: cannot read file", f.DisplayName()))
	}
	defer func() { _ = src.Close() }()

	if ok, msg := utils.ValidateImageContent(src, f.ContentType); !ok {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonInvalidContent,
			fmt.Sprintf("%s: %s", f.DisplayName(), msg))
	}
	return nil
}

// ReadAll loads the file content, refusing anything larger than maxBytes.
func ReadAll(f File, maxBytes int64) ([]byte, error) {
	src, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	var r io.Reader = src
	if maxBytes > 0 {
		r = io.LimitReader(src, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, service.NewReasonError(service.ErrorCodeValidation, ReasonFileTooLarge,
			fmt.Sprintf("%s: file exceeds %dMB", f.DisplayName(), maxBytes>>20))
	}
	return data, nil
}

// TransformError maps a storage.LimitImage failure for f to a validation error.
func TransformError(f File, err error) error {
	if errors.Is(err, storage.ErrImageTooLarge) {
		return service.NewReasonError(service.ErrorCodeValidation, ReasonFileTooLarge,
			fmt.Sprintf("%s: image dimensions are too large", f.DisplayName()))
	}
	return service.NewReasonError(service.ErrorCodeValidation, ReasonInvalidContent,
		fmt.Sprintf("%s: image cannot be decoded", f.DisplayName()))
}
