package dto

import "time"

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
