package services

import (
	"fmt"

	"github.com/internetqa/internetqa/internal/models"
)

// UploadRepository defines the interface for upload persistence
type UploadRepository interface {
	CreateUpload(upload *models.Upload) error
	GetUploadByID(id string) (*models.Upload, error)
	ListUploads(limit int) ([]*models.Upload, error)
}

// UploadService handles upload business logic
type UploadService interface {
	RecordUpload(filename string, size int64, contentType string) (*models.Upload, error)
	GetUpload(id string) (*models.Upload, error)
	RecentUploads(limit int) ([]*models.Upload, error)
}

// UploadServiceImpl implements UploadService
type UploadServiceImpl struct {
	uploadRepo UploadRepository
}

// NewUploadService creates a new upload service
func NewUploadService(uploadRepo UploadRepository) UploadService {
	return &UploadServiceImpl{
		uploadRepo: uploadRepo,
	}
}

// RecordUpload validates and stores metadata of a received file
func (s *UploadServiceImpl) RecordUpload(filename string, size int64, contentType string) (*models.Upload, error) {
	upload, err := models.NewUpload(filename, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	if err := s.uploadRepo.CreateUpload(upload); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return upload, nil
}

// GetUpload retrieves an upload by its ID
func (s *UploadServiceImpl) GetUpload(id string) (*models.Upload, error) {
	upload, err := s.uploadRepo.GetUploadByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}

// RecentUploads returns up to limit uploads, newest first
func (s *UploadServiceImpl) RecentUploads(limit int) ([]*models.Upload, error) {
	if limit <= 0 {
		limit = 10
	}
	uploads, err := s.uploadRepo.ListUploads(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}
