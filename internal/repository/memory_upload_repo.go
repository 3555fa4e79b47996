package repository

import (
	"sort"
	"sync"

	"github.com/internetqa/internetqa/internal/models"
)

// MemoryUploadRepository keeps uploads in process memory. Used when no
// database is configured.
type MemoryUploadRepository struct {
	mu      sync.RWMutex
	uploads map[string]*models.Upload
}

// NewMemoryUploadRepository creates an empty in-memory repository
func NewMemoryUploadRepository() *MemoryUploadRepository {
	return &MemoryUploadRepository{uploads: make(map[string]*models.Upload)}
}

// CreateUpload stores a copy of upload
func (r *MemoryUploadRepository) CreateUpload(upload *models.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *upload
	r.uploads[upload.ID] = &stored
	return nil
}

// GetUploadByID returns a copy of the upload stored under id
func (r *MemoryUploadRepository) GetUploadByID(id string) (*models.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	upload, ok := r.uploads[id]
	if !ok {
		return nil, models.ErrUploadNotFound
	}
	copied := *upload
	return &copied, nil
}

// ListUploads returns up to limit uploads, newest first
func (r *MemoryUploadRepository) ListUploads(limit int) ([]*models.Upload, error) {
	r.mu.RLock()
	uploads := make([]*models.Upload, 0, len(r.uploads))
	for _, upload := range r.uploads {
		copied := *upload
		uploads = append(uploads, &copied)
	}
	r.mu.RUnlock()

	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].CreatedAt.After(uploads[j].CreatedAt)
	})
	if limit > 0 && len(uploads) > limit {
		uploads = uploads[:limit]
	}
	return uploads, nil
}
