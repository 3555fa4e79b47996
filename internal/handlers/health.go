package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports that the replica is serving
type HealthHandler struct{}

// ServeHTTP reports the replica as up
func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}
