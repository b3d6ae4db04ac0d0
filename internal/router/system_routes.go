package router

import (
	systemhandler "momnt-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(api *gin.RouterGroup, h *systemhandler.Handler) {
	api.GET("/health", h.Health)
}
