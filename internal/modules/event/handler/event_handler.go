package handler

import (
	"errors"
	"momnt-server/internal/middleware"
	"momnt-server/internal/modules/common/httpx"
	"momnt-server/internal/modules/common/media"
	moduledto "momnt-server/internal/modules/event/dto"
	eventservice "momnt-server/internal/modules/event/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Create(c *gin.Context) {
	hostID, _ := middleware.CurrentHostID(c)

	var req moduledto.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.AbortWithError(c, http.StatusRequestEntityTooLarge, "too_large", "Request body too large")
			return
		}
		httpx.WriteBindError(c, err)
		return
	}

	input := eventservice.CreateInput{Title: req.Title, Date: req.Date}
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		cover := media.FromHeader(fh)
		input.Cover = &cover
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		httpx.WriteBindError(c, err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), hostID, input)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, moduledto.EventResponse{Event: event})
}

func (h *Handler) ListByHost(c *gin.Context) {
	hostID, _ := middleware.CurrentHostID(c)

	events, err := h.eventService.ListByHost(c.Request.Context(), hostID)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load events")
		return
	}
	c.JSON(http.StatusOK, moduledto.EventListResponse{Events: events})
}

func (h *Handler) Get(c *gin.Context) {
	event, err := h.eventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load event")
		return
	}

	hostID, ok := middleware.CurrentHostID(c)
	c.JSON(http.StatusOK, moduledto.EventDetailResponse{
		Event:   event,
		IsOwner: ok && hostID == event.HostID,
	})
}

func (h *Handler) Update(c *gin.Context) {
	hostID, _ := middleware.CurrentHostID(c)

	var req moduledto.UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.WriteBindError(c, err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("id"), hostID, eventservice.Patch{
		Title: req.Title,
		Date:  req.Date,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update event")
		return
	}
	c.JSON(http.StatusOK, moduledto.EventResponse{Event: event})
}

func (h *Handler) Delete(c *gin.Context) {
	hostID, _ := middleware.CurrentHostID(c)

	if err := h.eventService.Delete(c.Request.Context(), c.Param("id"), hostID); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete event")
		return
	}
	c.JSON(http.StatusOK, moduledto.MessageResponse{Message: "Event deleted"})
}
