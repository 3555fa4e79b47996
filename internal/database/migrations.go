package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the tables of the upload store
const Schema = `
	CREATE TABLE IF NOT EXISTS uploads (
		id UUID PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		size BIGINT NOT NULL,
		content_type VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_uploads_created_at ON uploads(created_at DESC);
	`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create uploads table: %w", err)
	}

	return nil
}
