package storage

import (
	"context"
	"fmt"
	"io"
	"momnt-server/internal/config"
	"momnt-server/internal/utils"
	"os"
	"path/filepath"
	"strings"
)

// LocalGateway writes objects below a directory that the router serves under URLPrefix.
type LocalGateway struct {
	root      string
	urlPrefix string
	baseURL   string
}

func NewLocalGateway(cfg config.LocalStorageConfig) (*LocalGateway, error) {
	root := cfg.Path
	if root == "" {
		root = "uploads"
	}
	if err := utils.EnsurePathNotSymlink(root); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	prefix := cfg.URLPrefix
	if prefix == "" {
		prefix = "/media/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &LocalGateway{
		root:      root,
		urlPrefix: prefix,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Root returns the directory objects are written to.
func (g *LocalGateway) Root() string {
	return g.root
}

func (g *LocalGateway) URL(key string) string {
	return g.baseURL + g.urlPrefix + key
}

func (g *LocalGateway) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst, err := utils.SecureJoin(g.root, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}

	// write to a temp file first so readers never observe a partial object
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("commit object: %w", err)
	}

	return g.URL(key), nil
}

func (g *LocalGateway) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path, err := utils.SecureJoin(g.root, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
