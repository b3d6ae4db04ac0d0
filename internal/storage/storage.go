package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"momnt-server/internal/config"
	"strings"
	"time"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Gateway stores opaque objects under slash-separated keys.
type Gateway interface {
	// Put stores size bytes from r under key and returns the public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the gateway selected by cfg.Driver, bounded by cfg.Timeout().
func New(ctx context.Context, cfg config.StorageConfig) (Gateway, error) {
	var (
		gw  Gateway
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case "minio", "s3":
		gw, err = NewMinioGateway(ctx, cfg.Minio)
	case "", "local":
		gw, err = NewLocalGateway(cfg.Local)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(gw, cfg.Timeout()), nil
}

// Key builds a storage key from parts, dropping empty segments.
func Key(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

type timeoutGateway struct {
	next    Gateway
	timeout time.Duration
}

// WithTimeout bounds every call on next by d. A timeout surfaces as an error
// wrapping context.DeadlineExceeded.
func WithTimeout(next Gateway, d time.Duration) Gateway {
	if d <= 0 {
		return next
	}
	return &timeoutGateway{next: next, timeout: d}
}

func (g *timeoutGateway) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		url string
		err error
	}
	done := make(chan result, 1)
	go func() {
		url, err := g.next.Put(ctx, key, r, size, contentType)
		done <- result{url: url, err: err}
	}()

	select {
	case res := <-done:
		return res.url, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("put %s: %w", key, ctx.Err())
	}
}

func (g *timeoutGateway) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- g.next.Delete(ctx, key) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("delete %s: %w", key, ctx.Err())
	}
}
