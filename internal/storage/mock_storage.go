package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MockStorageService stores media files on the local filesystem. Used for
// development and tests in place of a cloud object store.
type MockStorageService struct {
	uploadDir string
}

func NewMockStorageService(uploadDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MockStorageService{uploadDir: uploadDir}, nil
}

func (s *MockStorageService) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(s.uploadDir, clean), nil
}

func (s *MockStorageService) Save(ctx context.Context, key string, reader io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create media directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("failed to write media file: %w", err)
	}
	return n, nil
}

func (s *MockStorageService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *MockStorageService) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *MockStorageService) Exists(ctx context.Context, key string) (bool, int64, error) {
	p, err := s.path(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(p)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}
