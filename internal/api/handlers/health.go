package handlers

import (
	"net/http"
	"time"

	"github.com/quillhq/quill/pkg/registry"
)

// HealthResponse is the payload for health probe endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// HealthHandler handles health probe endpoints.
type HealthHandler struct {
	registry *registry.Registry
	cell     string
}

// NewHealthHandler creates a health handler probing the given registry slot.
func NewHealthHandler(reg *registry.Registry, cell string) *HealthHandler {
	if cell == "" {
		cell = registry.DefaultCell
	}
	return &HealthHandler{registry: reg, cell: cell}
}

// Liveness handles GET /health. It reports whether the process is up and
// serving; it never touches storage.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// Readiness handles GET /health/ready. The service is ready once the
// storage slot resolves, i.e. assembly has completed.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if _, err := h.registry.Resolve(h.cell); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Detail:    "storage not assembled",
		})
		return
	}

	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
