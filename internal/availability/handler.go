package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler serves bookable slots for a professional.
type Handler struct {
	repo        Repository
	horizonDays int
	slotCap     int
	now         func() time.Time
	logger      *logging.Logger
}

// NewHandler creates an availability handler. Zero horizon or cap fall
// back to the defaults.
func NewHandler(repo Repository, horizonDays, slotCap int, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if slotCap <= 0 {
		slotCap = DefaultSlotCap
	}
	return &Handler{
		repo:        repo,
		horizonDays: horizonDays,
		slotCap:     slotCap,
		now:         time.Now,
		logger:      logger,
	}
}

// ListSlots handles GET /professionals/{professionalID}/availability requests.
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "professionalID")

	cfg, err := h.repo.GetWorkingConfig(r.Context(), professionalID)
	if errors.Is(err, ErrConfigNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load working config", "error", err, "professional_id", professionalID)
		http.Error(w, "Failed to load availability", http.StatusInternalServerError)
		return
	}

	from := h.now().UTC()
	to := from.AddDate(0, 0, h.horizonDays)

	appointments, err := h.repo.ListAppointments(r.Context(), professionalID, from, to)
	if err != nil {
		h.logger.Error("failed to load appointments", "error", err, "professional_id", professionalID)
		http.Error(w, "Failed to load availability", http.StatusInternalServerError)
		return
	}

	blocks, err := h.repo.ListBlocks(r.Context(), professionalID, from, to)
	if err != nil {
		h.logger.Error("failed to load blocks", "error", err, "professional_id", professionalID)
		http.Error(w, "Failed to load availability", http.StatusInternalServerError)
		return
	}

	slots := GenerateSlots(*cfg, appointments, blocks, from, h.horizonDays, h.slotCap)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"slots": slots,
		"count": len(slots),
	})
}
