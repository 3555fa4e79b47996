package models

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadSize bounds the size of a file accepted by the replica
const MaxUploadSize = 10 << 20

// Upload records one file submitted through the upload form
type Upload struct {
	ID          string
	Filename    string
	Size        int64
	ContentType string
	CreatedAt   time.Time
}

// Domain errors
var (
	ErrEmptyFilename   = errors.New("filename cannot be empty")
	ErrInvalidFilename = errors.New("filename must not contain a path")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUploadNotFound  = errors.New("upload not found")
)

// NewUpload creates an upload record with validation
func NewUpload(filename string, size int64, contentType string) (*Upload, error) {
	if err := validateUpload(filename, size); err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Upload{
		ID:          uuid.New().String(),
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}, nil
}

func validateUpload(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return ErrEmptyFilename
	}
	if filepath.Base(filename) != filename || strings.ContainsAny(filename, `/\`) {
		return ErrInvalidFilename
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// IsEmpty reports whether the uploaded file had no content
func (u *Upload) IsEmpty() bool {
	return u.Size == 0
}
