package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/internetqa/internetqa/internal/models"
)

// MockUploadService is a mock implementation of UploadService for testing
type MockUploadService struct {
	RecordUploadFunc func(string, int64, string) (*models.Upload, error)
}

func (m *MockUploadService) RecordUpload(filename string, size int64, contentType string) (*models.Upload, error) {
	if m.RecordUploadFunc != nil {
		return m.RecordUploadFunc(filename, size, contentType)
	}
	return &models.Upload{ID: "upload-1", Filename: filename, Size: size}, nil
}

func (m *MockUploadService) GetUpload(id string) (*models.Upload, error) {
	return nil, models.ErrUploadNotFound
}

func (m *MockUploadService) RecentUploads(limit int) ([]*models.Upload, error) {
	return nil, nil
}

func newTestUploadHandler(t *testing.T, service *MockUploadService) *UploadHandler {
	t.Helper()
	handler, err := NewUploadHandler("../../templates/upload.html", "../../templates/uploaded.html", service, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create upload handler: %v", err)
	}
	return handler
}

func multipartRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write([]byte(content))
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_Form(t *testing.T) {
	handler := newTestUploadHandler(t, &MockUploadService{})

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`id="file-upload"`, `id="file-submit"`, `enctype="multipart/form-data"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected upload form to contain %q", want)
		}
	}
}

func TestUploadHandler_Upload(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		content        string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "successful upload",
			filename:       "test_upload.txt",
			content:        "Test file content",
			expectedStatus: http.StatusOK,
			expectedBody:   "File Uploaded!",
		},
		{
			name:           "no file chosen",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Please choose a file to upload.",
		},
		{
			name:           "invalid filename",
			filename:       "x.txt",
			serviceErr:     models.ErrInvalidFilename,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "The file name is not valid.",
		},
		{
			name:           "too large",
			filename:       "x.txt",
			serviceErr:     models.ErrFileTooLarge,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   "The file is too large.",
		},
		{
			name:           "service failure",
			filename:       "x.txt",
			serviceErr:     errors.New("database down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotName string
			var gotSize int64
			service := &MockUploadService{
				RecordUploadFunc: func(filename string, size int64, contentType string) (*models.Upload, error) {
					gotName, gotSize = filename, size
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &models.Upload{ID: "upload-1", Filename: filename, Size: size}, nil
				},
			}
			handler := newTestUploadHandler(t, service)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, multipartRequest(t, tt.filename, tt.content))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				if !strings.Contains(w.Body.String(), tt.filename) {
					t.Errorf("expected uploaded file name %s in body", tt.filename)
				}
				if gotName != tt.filename || gotSize != int64(len(tt.content)) {
					t.Errorf("unexpected upload passed to service: %s (%d bytes)", gotName, gotSize)
				}
			}
		})
	}
}

func TestUploadHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestUploadHandler(t, &MockUploadService{})

	req := httptest.NewRequest(http.MethodDelete, "/upload", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestUploadHandler_OversizedBody(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "just over the file limit", size: models.MaxUploadSize + 1},
		{name: "over the body limit", size: maxUploadBody + 1<<20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &MockUploadService{
				RecordUploadFunc: func(filename string, size int64, contentType string) (*models.Upload, error) {
					if size > models.MaxUploadSize {
						return nil, models.ErrFileTooLarge
					}
					return &models.Upload{ID: "upload-1", Filename: filename, Size: size}, nil
				},
			}
			handler := newTestUploadHandler(t, service)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, multipartRequest(t, "large_file.txt", strings.Repeat("x", tt.size)))

			if w.Code != http.StatusRequestEntityTooLarge {
				t.Errorf("expected status 413, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), msgFileTooLarge) {
				t.Errorf("expected body to contain %q", msgFileTooLarge)
			}
		})
	}
}
