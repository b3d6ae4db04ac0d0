package notify

import (
	"context"
	"errors"
	"momnt-server/internal/model"
	"time"
)

// Message types
const (
	TypeUploadCreated = "upload.created"
	TypeUploadDeleted = "upload.deleted"
	TypeEventDeleted  = "event.deleted"
)

// Message is what live-feed subscribers and the broker receive.
type Message struct {
	Type      string         `json:"type"`
	EventID   string         `json:"event_id"`
	Uploads   []model.Upload `json:"uploads,omitempty"`
	UploadID  string         `json:"upload_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Notifier interface {
	Publish(ctx context.Context, msg Message) error
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Publish(ctx context.Context, msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Publish(context.Context, Message) error { return nil }
