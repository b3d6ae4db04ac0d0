package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"momnt-server/internal/modules/common/httpx"
	"momnt-server/internal/modules/common/media"
	moduledto "momnt-server/internal/modules/upload/dto"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxFieldBytes = 4 << 10

type batch struct {
	eventID  string
	files    []media.File
	overflow bool
}

func (h *Handler) Submit(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		httpx.AbortWithError(c, http.StatusBadRequest, "invalid_request", "Expected a multipart/form-data body")
		return
	}

	b, err := readBatch(reader, h.uploadService.MaxFiles(), h.uploadService.MaxFileBytes())
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.AbortWithError(c, http.StatusRequestEntityTooLarge, "too_large", "Request body too large")
			return
		}
		httpx.AbortWithError(c, http.StatusBadRequest, "invalid_request", "Malformed multipart body")
		return
	}
	if b.overflow {
		httpx.WriteServiceError(c, h.uploadService.CheckBatchSize(len(b.files)+1), "Upload failed, please try again later")
		return
	}

	uploads, err := h.uploadService.Submit(c.Request.Context(), b.eventID, b.files, c.ClientIP())
	if err != nil {
		httpx.WriteServiceError(c, err, "Upload failed, please try again later")
		return
	}
	c.JSON(http.StatusCreated, moduledto.SubmitResponse{Upload: uploads})
}

// readBatch streams the form, keeping each file in memory up to one byte past
// maxFileBytes so the size check still sees it as too large. It stops at the
// first file beyond maxFiles without reading the rest of the body.
func readBatch(r *multipart.Reader, maxFiles int, maxFileBytes int64) (batch, error) {
	var b batch
	for {
		part, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			return b, nil
		}
		if err != nil {
			return b, err
		}

		switch {
		case part.FormName() == moduledto.FieldEventID && b.eventID == "":
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return b, err
			}
			b.eventID = strings.TrimSpace(string(value))
		case part.FormName() == moduledto.FieldFiles && part.FileName() != "":
			if len(b.files) == maxFiles {
				b.overflow = true
				return b, nil
			}
			data, err := io.ReadAll(io.LimitReader(part, maxFileBytes+1))
			if err != nil {
				return b, err
			}
			b.files = append(b.files, media.FromBytes(part.FileName(), part.Header.Get("Content-Type"), data))
		}
		_ = part.Close()
	}
}
