package router

import (
	"momnt-server/internal/middleware"
	uploadhandler "momnt-server/internal/modules/upload/handler"
	"momnt-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerUploadRoutes(api *gin.RouterGroup, h *uploadhandler.Handler, appService *service.AppService, counter middleware.WindowCounter) {
	// the window limiter runs first so rejected requests never reach body parsing
	uploadLimiter := middleware.UploadRateLimit(appService, counter)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware(appService, 0)

	api.POST("/upload", uploadLimiter, uploadBodyLimit, h.Submit)
}
