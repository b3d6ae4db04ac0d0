//go:build !embed

package main

import (
	"io/fs"

	"github.com/gin-gonic/gin"
)

// GetFrontendAssets returns nil in API-only builds (no -tags embed).
func GetFrontendAssets() fs.FS {
	return nil
}

func setupFrontend(_ *gin.Engine, _ fs.FS) []byte {
	return nil
}
