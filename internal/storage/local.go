package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects as files under a directory.
type LocalStorage struct {
	dir    string
	prefix string
}

// NewLocalStorage returns a storage rooted at dir.
func NewLocalStorage(dir, prefix string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return &LocalStorage{dir: abs, prefix: prefix}, nil
}

// path maps a key to a file inside the root, rejecting traversal.
func (s *LocalStorage) path(key string) (string, error) {
	p := filepath.Join(s.dir, filepath.FromSlash(objectKey(s.prefix, key)))
	if p != s.dir && !strings.HasPrefix(p, s.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return p, nil
}

func (s *LocalStorage) EnsureBucket(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	return f, nil
}

// GetURL returns the absolute file path of the object.
func (s *LocalStorage) GetURL(key string) string {
	p, err := s.path(key)
	if err != nil {
		return ""
	}
	return p
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}
