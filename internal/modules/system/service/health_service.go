package service

import (
	"context"
	"log"
	"time"

	moduledto "momnt-server/internal/modules/system/dto"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// Health reports whether the database answers a ping.
func (s *Service) Health(ctx context.Context) moduledto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := moduledto.HealthResponse{Status: StatusOK, Time: time.Now().UTC()}
	if err := s.systemStore.Ping(ctx); err != nil {
		log.Printf("⚠️ health: database ping failed: %v", err)
		resp.Status = StatusUnavailable
	}
	return resp
}
