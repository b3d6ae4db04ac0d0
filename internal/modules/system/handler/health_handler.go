package handler

import (
	systemservice "momnt-server/internal/modules/system/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	resp := h.systemService.Health(c.Request.Context())
	status := http.StatusOK
	if resp.Status != systemservice.StatusOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
