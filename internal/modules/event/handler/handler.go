package handler

import (
	eventservice "momnt-server/internal/modules/event/service"
	"momnt-server/internal/notify"

	"github.com/gorilla/websocket"
)

type Handler struct {
	eventService *eventservice.Service
	hub          *notify.Hub
	upgrader     websocket.Upgrader
}

func New(eventService *eventservice.Service, hub *notify.Hub, upgrader websocket.Upgrader) *Handler {
	return &Handler{eventService: eventService, hub: hub, upgrader: upgrader}
}
