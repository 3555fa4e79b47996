package pages

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
)

// File upload page locators
const (
	FileInput           = "#file-upload"
	UploadButton        = "#file-submit"
	UploadedFiles       = "#uploaded-files"
	UploadSuccessHeader = "h3"
	UploadError         = "#upload-error"
)

// UploadSuccessText is the heading shown once a file was accepted
const UploadSuccessText = "File Uploaded!"

// FileUploadPage submits a single file through a multipart form
type FileUploadPage struct {
	BasePage
}

// NewFileUploadPage creates a file upload page object
func NewFileUploadPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) *FileUploadPage {
	return &FileUploadPage{BasePage: newBasePage(page, site, "upload", logger)}
}

// SelectFile sets the file input without submitting
func (p *FileUploadPage) SelectFile(path string) error {
	if err := p.Page.Locator(FileInput).SetInputFiles(path); err != nil {
		return fmt.Errorf("failed to select %s: %w", path, err)
	}
	return nil
}

// ClickUpload submits the form
func (p *FileUploadPage) ClickUpload() error {
	return p.Click(UploadButton)
}

// UploadFile selects path and submits the form
func (p *FileUploadPage) UploadFile(path string) error {
	if err := p.SelectFile(path); err != nil {
		return err
	}
	return p.ClickUpload()
}

// SuccessMessage returns the heading shown after an upload
func (p *FileUploadPage) SuccessMessage() (string, error) {
	return p.Text(UploadSuccessHeader)
}

// ExpectUploaded waits for the success heading after a submit
func (p *FileUploadPage) ExpectUploaded() error {
	return p.ExpectText(UploadSuccessHeader, UploadSuccessText)
}

// IsFormDisplayed reports whether the file input and submit button are
// visible and enabled
func (p *FileUploadPage) IsFormDisplayed() bool {
	return p.IsVisible(FileInput) && p.IsEnabled(FileInput) &&
		p.IsVisible(UploadButton) && p.IsEnabled(UploadButton)
}

// UploadedFilesText returns the uploaded file names as listed by the site
func (p *FileUploadPage) UploadedFilesText() (string, error) {
	return p.Text(UploadedFiles)
}

// CreateTestFile writes content to dir/name and returns its path
func CreateTestFile(dir, name, content string) (string, error) {
	if name == "" {
		name = "test_upload.txt"
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("test file name %q must not contain a directory", name)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to create test file: %w", err)
	}
	return path, nil
}

// CleanupTestFile removes path. A missing file is not an error.
func CleanupTestFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove test file: %w", err)
	}
	return nil
}
