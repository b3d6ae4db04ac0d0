package middleware

import (
	"fmt"
	"momnt-server/internal/modules/common/httpx"
	"momnt-server/internal/platform/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultJSONBodyBytes = 2 << 20
	multipartOverhead    = 1 << 20
)

// BodyLimitMiddleware caps JSON request bodies. Paths ending in one of
// skipSuffixes carry their own upload limit.
func BodyLimitMiddleware(maxBytes int64, skipSuffixes ...string) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = defaultJSONBodyBytes
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, suffix := range skipSuffixes {
			if strings.HasSuffix(path, suffix) {
				c.Next()
				return
			}
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimit returns the multipart body cap for a request carrying up to
// files images. files <= 0 means the configured batch size. The cap has room
// for one file beyond the batch so the handler can see an oversized batch and
// reject it by count.
func UploadBodyLimit(appService *service.AppService, files int) int64 {
	cfg := appService.Config().Upload
	if files <= 0 {
		files = cfg.MaxFiles
	}
	if files <= 0 {
		files = 5
	}
	perFile := cfg.MaxFileSizeBytes()
	if perFile <= 0 {
		perFile = 10 << 20
	}
	return int64(files+1)*perFile + multipartOverhead
}

// UploadBodyLimitMiddleware rejects oversized multipart bodies with 413
// before they are parsed.
func UploadBodyLimitMiddleware(appService *service.AppService, files int) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxBytes := UploadBodyLimit(appService, files)

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			httpx.AbortWithError(c, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Sprintf("Request body must not exceed %dMB", maxBytes>>20))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
