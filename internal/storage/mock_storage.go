package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MockStorage stores files on the local filesystem and hands out URLs
// served by the application itself. Intended for development and tests.
type MockStorage struct {
	baseURL   string // server URL, e.g. "http://localhost:8080"
	uploadDir string
}

func NewMockStorage(baseURL, uploadDir string) (*MockStorage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MockStorage{baseURL: baseURL, uploadDir: uploadDir}, nil
}

// GeneratePresignedUploadURL returns an upload URL served by this application.
// The key travels in the query string so the upload handler knows where to save.
func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	return fmt.Sprintf("%s/files/upload/%s?key=%s", m.baseURL, uploadToken, key), nil
}

// GeneratePresignedDownloadURL returns a download URL served by this application.
func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/files/download?key=%s", m.baseURL, key), nil
}

func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(m.uploadDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(m.uploadDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(m.uploadDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(m.uploadDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
