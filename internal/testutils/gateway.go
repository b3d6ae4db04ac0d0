package testutils

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"
)

// MemoryGateway is an in-memory object store for tests.
type MemoryGateway struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	// Fail, when set, is consulted after the payload is read; a non-nil
	// result fails the Put.
	Fail func(key string) error
	// Delay holds every Put for the given duration or until ctx is done.
	Delay time.Duration
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{objects: make(map[string][]byte)}
}

func (g *MemoryGateway) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.Fail != nil {
		if err := g.Fail(key); err != nil {
			return "", err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = data
	return "/media/" + key, nil
}

func (g *MemoryGateway) Delete(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.objects, key)
	g.deleted = append(g.deleted, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (g *MemoryGateway) Keys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]string, 0, len(g.objects))
	for k := range g.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (g *MemoryGateway) Object(key string) ([]byte, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	data, ok := g.objects[key]
	return data, ok
}

func (g *MemoryGateway) Deleted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.deleted...)
}
