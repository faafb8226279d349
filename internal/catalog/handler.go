package catalog

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler serves read-only catalog endpoints.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// ListServices handles GET /catalog/services requests.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to load catalog", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	services := make([]Service, 0, len(snap.Services))
	for _, s := range snap.Services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })

	writeJSON(w, services)
}

// ListPrograms handles GET /catalog/programs requests.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to load catalog", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	programs := make([]Program, 0, len(snap.Programs))
	for _, p := range snap.Programs {
		programs = append(programs, p)
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].Title < programs[j].Title })

	writeJSON(w, programs)
}

// ListChallenges handles GET /catalog/challenges requests.
func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to load catalog", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	challenges := make([]Challenge, 0, len(snap.Challenges))
	for _, c := range snap.Challenges {
		challenges = append(challenges, c)
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].Title < challenges[j].Title })

	writeJSON(w, challenges)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
