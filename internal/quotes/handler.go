package quotes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler handles HTTP requests for the quote builder.
type Handler struct {
	service *Service
	repo    Repository
	logger  *logging.Logger
}

// NewHandler creates a new quotes handler.
func NewHandler(service *Service, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, repo: repo, logger: logger}
}

// EmitRequest is the payload for the emission endpoints. Chat emission
// additionally carries the conversation routing fields.
type EmitRequest struct {
	Quote
	ConversationID string `json:"conversation_id,omitempty"`
	ProfessionalID string `json:"professional_id,omitempty"`
	Message        string `json:"message,omitempty"`
}

// TotalsResponse mirrors the builder's pricing summary.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Preview handles POST /admin/quotes/preview requests: totals without
// side effects, so the builder UI can live-update.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeQuoteJSON(w, http.StatusOK, TotalsResponse{
		Subtotal: req.Subtotal(),
		Discount: req.DiscountAmount(),
		Total:    req.Total(),
	})
}

// EmitPDF handles POST /admin/leads/{leadID}/quote/pdf requests and
// streams the rendered document.
func (h *Handler) EmitPDF(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if leadID := chi.URLParam(r, "leadID"); leadID != "" {
		req.Quote.LeadID = leadID
	}

	doc, err := h.service.EmitPDF(r.Context(), &req.Quote)
	if err != nil {
		h.writeQuoteError(w, "emit pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cotizacion-`+req.Quote.ID+`.pdf"`)
	_, _ = w.Write(doc)
}

// EmitEmail handles POST /admin/leads/{leadID}/quote/email requests.
func (h *Handler) EmitEmail(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if leadID := chi.URLParam(r, "leadID"); leadID != "" {
		req.Quote.LeadID = leadID
	}
	if req.ClientEmail == "" {
		http.Error(w, "client_email is required", http.StatusBadRequest)
		return
	}

	if err := h.service.EmitEmail(r.Context(), &req.Quote); err != nil {
		h.writeQuoteError(w, "emit email", err)
		return
	}

	writeQuoteJSON(w, http.StatusOK, map[string]string{
		"status":   "sent",
		"quote_id": req.Quote.ID,
	})
}

// SendToChat handles POST /conversations/{conversationID}/quote requests:
// payment link plus quote message in the conversation.
func (h *Handler) SendToChat(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if convID := chi.URLParam(r, "conversationID"); convID != "" {
		req.ConversationID = convID
	}
	if req.ConversationID == "" || req.ProfessionalID == "" {
		http.Error(w, "conversation_id and professional_id are required", http.StatusBadRequest)
		return
	}

	msg, err := h.service.SendToChat(r.Context(), &req.Quote, req.ConversationID, req.ProfessionalID, req.Message)
	if err != nil {
		h.writeQuoteError(w, "send to chat", err)
		return
	}

	writeQuoteJSON(w, http.StatusCreated, msg)
}

// ListByLead handles GET /admin/leads/{leadID}/quotes requests.
func (h *Handler) ListByLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	list, err := h.repo.ListByLead(r.Context(), leadID)
	if err != nil {
		h.logger.Error("failed to list quotes", "error", err, "lead_id", leadID)
		http.Error(w, "Failed to list quotes", http.StatusInternalServerError)
		return
	}

	writeQuoteJSON(w, http.StatusOK, map[string]any{
		"quotes": list,
		"count":  len(list),
	})
}

func (h *Handler) writeQuoteError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrNoLineItems),
		errors.Is(err, ErrNotesTooLong),
		errors.Is(err, ErrInvalidDiscount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("quotes: "+action+" failed", "error", err)
		http.Error(w, "Request failed", http.StatusInternalServerError)
	}
}

func writeQuoteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
