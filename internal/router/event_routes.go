package router

import (
	"momnt-server/internal/middleware"
	eventhandler "momnt-server/internal/modules/event/handler"
	"momnt-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerEventRoutes(api *gin.RouterGroup, h *eventhandler.Handler, resolver middleware.HostResolver, appService *service.AppService) {
	eventGroup := api.Group("/events")
	requireHost := middleware.JWTAuth(resolver)
	coverBodyLimit := middleware.UploadBodyLimitMiddleware(appService, 1)

	eventGroup.POST("/create", requireHost, coverBodyLimit, h.Create)
	eventGroup.GET("/host", requireHost, h.ListByHost)

	// reading by ID needs no login; the ID itself is the capability
	eventGroup.GET("/:id", middleware.OptionalJWTAuth(resolver), h.Get)
	eventGroup.PUT("/:id", requireHost, h.Update)
	eventGroup.DELETE("/:id", requireHost, h.Delete)

	eventGroup.GET("/:id/uploads", h.ListUploads)
	eventGroup.DELETE("/:id/uploads/:uploadId", requireHost, h.DeleteUpload)
	eventGroup.GET("/:id/live", h.Live)
}
