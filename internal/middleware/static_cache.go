package middleware

import "github.com/gin-gonic/gin"

// StaticCacheMiddleware marks stored media as immutable. Object keys are
// random so a key never changes content.
func StaticCacheMiddleware(cacheControl string) gin.HandlerFunc {
	if cacheControl == "" {
		cacheControl = "public, max-age=31536000, immutable"
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", cacheControl)
		c.Next()
	}
}
