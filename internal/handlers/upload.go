package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/models"
	"github.com/internetqa/internetqa/internal/services"
)

// maxUploadBody leaves room for the multipart framing around a file of
// models.MaxUploadSize bytes
const maxUploadBody = models.MaxUploadSize + 1<<20

// UploadHandler serves the upload form and receives submitted files
type UploadHandler struct {
	form          *template.Template
	uploaded      *template.Template
	uploadService services.UploadService
	logger        *zap.Logger
}

const msgFileTooLarge = "The file is too large."

type uploadFormData struct {
	Error string
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(formTemplate, uploadedTemplate string, uploadService services.UploadService, logger *zap.Logger) (*UploadHandler, error) {
	form, err := template.ParseFiles(formTemplate)
	if err != nil {
		return nil, err
	}
	uploaded, err := template.ParseFiles(uploadedTemplate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UploadHandler{
		form:          form,
		uploaded:      uploaded,
		uploadService: uploadService,
		logger:        logger,
	}, nil
}

// ServeHTTP renders the form on GET and stores the file on POST
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, h.form, uploadFormData{}, h.logger)
	case http.MethodPost:
		h.receive(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UploadHandler) receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(models.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectUpload(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		h.rejectUpload(w, http.StatusBadRequest, "Could not read the submitted form.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.rejectUpload(w, http.StatusBadRequest, "Please choose a file to upload.")
		return
	}
	file.Close()

	upload, err := h.uploadService.RecordUpload(header.Filename, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyFilename), errors.Is(err, models.ErrInvalidFilename):
			h.rejectUpload(w, http.StatusBadRequest, "The file name is not valid.")
		case errors.Is(err, models.ErrFileTooLarge):
			h.rejectUpload(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		default:
			h.logger.Error("Failed to record upload.", zap.String("filename", header.Filename), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("File uploaded.", zap.String("upload_id", upload.ID), zap.String("filename", upload.Filename), zap.Int64("size", upload.Size))
	render(w, h.uploaded, upload, h.logger)
}

func (h *UploadHandler) rejectUpload(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.form.Execute(w, uploadFormData{Error: message}); err != nil {
		h.logger.Error("Failed to render upload form.", zap.Error(err))
	}
}
