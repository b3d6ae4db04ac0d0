package handler

import uploadservice "momnt-server/internal/modules/upload/service"

type Handler struct {
	uploadService *uploadservice.Service
}

func New(uploadService *uploadservice.Service) *Handler {
	return &Handler{uploadService: uploadService}
}
