package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/internetqa/internetqa/internal/models"
)

// UploadRepository handles database operations for uploads
type UploadRepository struct {
	db *sql.DB
}

// NewUploadRepository creates a new upload repository on db
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{
		db: db,
	}
}

// CreateUpload inserts an upload record
func (r *UploadRepository) CreateUpload(upload *models.Upload) error {
	query := `
		INSERT INTO uploads (id, filename, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query,
		upload.ID,
		upload.Filename,
		upload.Size,
		upload.ContentType,
		upload.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}

	return nil
}

// GetUploadByID retrieves an upload by its ID
func (r *UploadRepository) GetUploadByID(id string) (*models.Upload, error) {
	query := `
		SELECT id, filename, size, content_type, created_at
		FROM uploads
		WHERE id = $1
	`

	upload := &models.Upload{}
	err := r.db.QueryRow(query, id).Scan(
		&upload.ID,
		&upload.Filename,
		&upload.Size,
		&upload.ContentType,
		&upload.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}

	return upload, nil
}

// ListUploads returns up to limit uploads, newest first
func (r *UploadRepository) ListUploads(limit int) ([]*models.Upload, error) {
	query := `
		SELECT id, filename, size, content_type, created_at
		FROM uploads
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		upload := &models.Upload{}
		if err := rows.Scan(
			&upload.ID,
			&upload.Filename,
			&upload.Size,
			&upload.ContentType,
			&upload.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	return uploads, nil
}
