package dto

import "momnt-server/internal/model"

// Multipart field names of a guest submission.
const (
	FieldEventID = "eventId"
	FieldFiles   = "files"
)

type SubmitResponse struct {
	Upload []model.Upload `json:"upload"`
}
