package testutils

import (
	"context"
	"sync"

	"momnt-server/internal/notify"
)

// RecordingNotifier keeps every published message.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
	Err      error
}

func (n *RecordingNotifier) Publish(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.Err
}

func (n *RecordingNotifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}
