package handler

import (
	"log"
	"momnt-server/internal/middleware"
	"momnt-server/internal/modules/common/httpx"
	moduledto "momnt-server/internal/modules/event/dto"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUploads(c *gin.Context) {
	uploads, err := h.eventService.ListUploads(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load uploads")
		return
	}
	c.JSON(http.StatusOK, moduledto.UploadListResponse{Uploads: uploads})
}

func (h *Handler) DeleteUpload(c *gin.Context) {
	hostID, _ := middleware.CurrentHostID(c)

	err := h.eventService.DeleteUpload(c.Request.Context(), c.Param("id"), c.Param("uploadId"), hostID)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete upload")
		return
	}
	c.JSON(http.StatusOK, moduledto.MessageResponse{Message: "Upload deleted"})
}

// Live streams upload notifications for one event over a websocket.
func (h *Handler) Live(c *gin.Context) {
	eventID := c.Param("id")
	if err := h.eventService.EnsureExists(c.Request.Context(), eventID); err != nil {
		httpx.WriteServiceError(c, err, "Failed to load event")
		return
	}
	if h.hub == nil {
		httpx.AbortWithError(c, http.StatusServiceUnavailable, "unavailable", "Live feed is disabled")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ live feed upgrade for event %s: %v", eventID, err)
		return
	}
	h.hub.Serve(conn, eventID)
}
