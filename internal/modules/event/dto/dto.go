package dto

import "momnt-server/internal/model"

type CreateEventRequest struct {
	Title string `form:"title" json:"title" binding:"required"`
	Date  string `form:"date" json:"date" binding:"required"`
}

type UpdateEventRequest struct {
	Title *string `form:"title" json:"title"`
	Date  *string `form:"date" json:"date"`
}

type EventResponse struct {
	Event *model.Event `json:"event"`
}

type EventDetailResponse struct {
	Event   *model.Event `json:"event"`
	IsOwner bool         `json:"is_owner"`
}

type EventListResponse struct {
	Events []model.Event `json:"events"`
}

type UploadListResponse struct {
	Uploads []model.Upload `json:"uploads"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
