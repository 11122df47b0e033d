package export

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/rpattn/shadowschema/internal/registry"
)

// Handler serves the read-only introspection endpoint over a derived
// registry: the JSON snapshot and the xlsx report download.
type Handler struct {
	registry *registry.Registry
}

// NewHTTPHandler creates the introspection handler.
func NewHTTPHandler(reg *registry.Registry) http.Handler {
	return &Handler{registry: reg}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/report"):
		h.handleReport(w, r)
		return
	case r.Method == http.MethodGet:
		h.handleSnapshot(w, r)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot := BuildSnapshot(h.registry)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Printf("[HTTP] failed to encode schema snapshot: %v", err)
	}
}

func (h *Handler) handleReport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="shadow-schema.xlsx"`)
	if err := StreamReport(w, h.registry); err != nil {
		log.Printf("[HTTP] failed to stream schema report: %v", err)
	}
}
