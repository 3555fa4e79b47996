package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/internetqa/internetqa/internal/models"
)

func TestMemoryUploadRepository(t *testing.T) {
	repo := NewMemoryUploadRepository()
	base := time.Now()

	for i, name := range []string{"first.txt", "second.txt", "third.txt"} {
		err := repo.CreateUpload(&models.Upload{
			ID:        uuid.New().String(),
			Filename:  name,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("CreateUpload() error = %v", err)
		}
	}

	uploads, err := repo.ListUploads(2)
	if err != nil {
		t.Fatalf("ListUploads() error = %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("Expected 2 uploads, got %d", len(uploads))
	}
	if uploads[0].Filename != "third.txt" || uploads[1].Filename != "second.txt" {
		t.Errorf("Expected newest first, got %s, %s", uploads[0].Filename, uploads[1].Filename)
	}

	got, err := repo.GetUploadByID(uploads[0].ID)
	if err != nil {
		t.Fatalf("GetUploadByID() error = %v", err)
	}
	got.Filename = "mutated"
	again, _ := repo.GetUploadByID(uploads[0].ID)
	if again.Filename != "third.txt" {
		t.Error("Stored upload must not be mutated through returned copies")
	}

	if _, err := repo.GetUploadByID(uuid.New().String()); !errors.Is(err, models.ErrUploadNotFound) {
		t.Errorf("Expected ErrUploadNotFound, got %v", err)
	}
}
