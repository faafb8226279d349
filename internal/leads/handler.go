package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler handles HTTP requests for company leads
type Handler struct {
	repo    Repository
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:    repo,
		service: service,
		logger:  logger,
	}
}

// CreateLead handles POST /leads requests (landing-page submissions).
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create lead", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("lead created", "id", lead.ID, "company", lead.CompanyName)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lead)
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads []*CompanyLead `json:"leads"`
	Count int            `json:"count"`
}

// ListLeads handles GET /admin/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListLeadsResponse{Leads: leads, Count: len(leads)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /admin/leads/{leadID}/status requests.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.UpdateStatus(r.Context(), leadID, req.Status)
	if err != nil {
		h.writeLeadError(w, err, leadID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

// ConvertResponse reports the outcome of a lead conversion.
type ConvertResponse struct {
	Lead      *CompanyLead `json:"lead"`
	CompanyID string       `json:"company_id"`
}

// Convert handles POST /admin/leads/{leadID}/convert requests.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	lead, companyID, err := h.service.Convert(r.Context(), leadID)
	if err != nil {
		h.writeLeadError(w, err, leadID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConvertResponse{Lead: lead, CompanyID: companyID})
}

func (h *Handler) writeLeadError(w http.ResponseWriter, err error, leadID string) {
	switch {
	case errors.Is(err, ErrLeadNotFound):
		http.Error(w, "lead not found", http.StatusNotFound)
	case errors.Is(err, ErrLeadConverted):
		http.Error(w, "lead already converted", http.StatusConflict)
	case errors.Is(err, ErrInvalidStatus):
		http.Error(w, "invalid lead status", http.StatusBadRequest)
	default:
		h.logger.Error("lead operation failed", "error", err, "lead_id", leadID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
