package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type StorageService interface {
	SaveFile(originalName string, data []byte) (string, error)
	GetFilePath(storagePath string) string
	DeleteFile(storagePath string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	now        func() time.Time
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		now:        time.Now,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveFile stores data under resumes/<date>/ and returns the storage path
// relative to the upload directory.
func (s *storageService) SaveFile(originalName string, data []byte) (string, error) {
	fileType, err := FileTypeOf(originalName)
	if err != nil {
		return "", err
	}

	dir := filepath.Join("resumes", s.now().Format("2006-01-02"))
	if err := os.MkdirAll(filepath.Join(s.uploadPath, dir), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	storagePath := filepath.Join(dir, uuid.New().String()+"."+fileType)
	if err := os.WriteFile(s.GetFilePath(storagePath), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return filepath.ToSlash(storagePath), nil
}

func (s *storageService) GetFilePath(storagePath string) string {
	return filepath.Join(s.uploadPath, filepath.FromSlash(strings.TrimPrefix(storagePath, "/")))
}

func (s *storageService) DeleteFile(storagePath string) error {
	if err := os.Remove(s.GetFilePath(storagePath)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
