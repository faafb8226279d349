package companies

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloomwell/wellness-platform/internal/leads"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler handles HTTP requests for companies
type Handler struct {
	repo     Repository
	leadRepo leads.Repository
	logger   *logging.Logger
}

// NewHandler creates a new companies handler
func NewHandler(repo Repository, leadRepo leads.Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// CreateCompany handles POST /admin/companies requests
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) || errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create company", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("company created", "id", company.ID, "name", company.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(company)
}

// ListCompaniesResponse is the response for listing companies
type ListCompaniesResponse struct {
	Companies []*Company `json:"companies"`
	Count     int        `json:"count"`
}

// ListCompanies handles GET /admin/companies requests. Query params:
// search, status, industry, sort (newest|oldest|name_asc|name_desc).
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list companies", "error", err)
		http.Error(w, "failed to list companies", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := FilterAndSort(companies, Filter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Industry: q.Get("industry"),
		SortBy:   q.Get("sort"),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListCompaniesResponse{Companies: filtered, Count: len(filtered)})
}

// GetCompany handles GET /admin/companies/{companyID} requests
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	company, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeCompanyError(w, err, id)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

// UpdateCompany handles PUT /admin/companies/{companyID} requests
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	var req UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		h.writeCompanyError(w, err, id)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

// DeleteCompany handles DELETE /admin/companies/{companyID} requests
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeCompanyError(w, err, id)
		return
	}

	h.logger.Info("company deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /admin/companies/stats requests
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	companies, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list companies for stats", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	companyLeads, err := h.leadRepo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads for stats", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	stats := ComputeStats(companies, companyLeads, time.Now().UTC())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *Handler) writeCompanyError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, ErrCompanyNotFound):
		http.Error(w, "company not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("company operation failed", "error", err, "company_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
