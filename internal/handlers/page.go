package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// PageHandler renders a static page from a template
type PageHandler struct {
	template *template.Template
	data     interface{}
	logger   *zap.Logger
}

// NewPageHandler creates a handler rendering templatePath with data
func NewPageHandler(templatePath string, data interface{}, logger *zap.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PageHandler{
		template: tmpl,
		data:     data,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET requests for the page
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	render(w, h.template, h.data, h.logger)
}

func render(w http.ResponseWriter, tmpl *template.Template, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("Failed to render template.", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
