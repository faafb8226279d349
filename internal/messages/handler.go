package messages

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/net/websocket"

	"github.com/bloomwell/wellness-platform/internal/catalog"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// MetricsRecorder counts sent messages by attachment kind. Nil disables
// recording.
type MetricsRecorder interface {
	MessageSent(kind string)
}

// Handler handles HTTP and websocket requests for direct messaging.
type Handler struct {
	repo    Repository
	catalog *catalog.Store
	hub     *Hub
	metrics MetricsRecorder
	logger  *logging.Logger
}

// NewHandler creates a new messages handler. The hub may be nil when
// websocket streaming is disabled.
func NewHandler(repo Repository, store *catalog.Store, hub *Hub, metrics MetricsRecorder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:    repo,
		catalog: store,
		hub:     hub,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateConversation handles POST /conversations requests.
func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID      string `json:"patient_id"`
		ProfessionalID string `json:"professional_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" || req.ProfessionalID == "" {
		http.Error(w, "patient_id and professional_id are required", http.StatusBadRequest)
		return
	}

	conv, err := h.repo.CreateConversation(r.Context(), req.PatientID, req.ProfessionalID)
	if err != nil {
		h.logger.Error("failed to create conversation", "error", err)
		http.Error(w, "Failed to create conversation", http.StatusInternalServerError)
		return
	}

	writeMessageJSON(w, http.StatusCreated, conv)
}

// ListConversations handles GET /conversations?participant= requests.
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	participant := r.URL.Query().Get("participant")
	if participant == "" {
		http.Error(w, "participant parameter required", http.StatusBadRequest)
		return
	}

	convs, err := h.repo.ListConversations(r.Context(), participant)
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		http.Error(w, "Failed to list conversations", http.StatusInternalServerError)
		return
	}

	writeMessageJSON(w, http.StatusOK, map[string]any{
		"conversations": convs,
		"count":         len(convs),
	})
}

// RenderedMessage pairs a message with the card decision so polling
// clients do not need the catalog to draw it.
type RenderedMessage struct {
	*Message
	Render Rendering `json:"render"`
}

// ListMessages handles GET /conversations/{conversationID}/messages
// requests. An optional ?after=RFC3339 returns only newer messages,
// which is what the polling client passes on each tick.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var after time.Time
	if raw := r.URL.Query().Get("after"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			http.Error(w, "invalid after parameter, want RFC3339", http.StatusBadRequest)
			return
		}
		after = t
	}

	msgs, err := h.repo.ListMessages(r.Context(), conversationID, after)
	if err != nil {
		h.writeMessageError(w, "list messages", err)
		return
	}

	snap, err := h.snapshot(r)
	if err != nil {
		h.logger.Error("failed to load catalog for rendering", "error", err)
		http.Error(w, "Failed to list messages", http.StatusInternalServerError)
		return
	}

	out := make([]RenderedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, RenderedMessage{Message: m, Render: RenderKindOf(m, snap)})
	}

	writeMessageJSON(w, http.StatusOK, map[string]any{
		"messages": out,
		"count":    len(out),
	})
}

// SendMessage handles POST /conversations/{conversationID}/messages
// requests for plain text messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req AppendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.ConversationID = conversationID
	req.Metadata = Metadata{}

	msg, err := h.repo.Append(r.Context(), &req)
	if err != nil {
		h.writeMessageError(w, "send message", err)
		return
	}

	h.afterAppend(msg)
	writeMessageJSON(w, http.StatusCreated, msg)
}

// AttachRequest is the payload for structured attachments. Kind selects
// which of the payload fields is consulted.
type AttachRequest struct {
	SenderID   string `json:"sender_id"`
	SenderType string `json:"sender_type"`
	Kind       Kind   `json:"kind"`

	ServiceID   string           `json:"service_id,omitempty"`
	ProgramID   string           `json:"program_id,omitempty"`
	ChallengeID string           `json:"challenge_id,omitempty"`
	Slot        *Slot            `json:"slot,omitempty"`
	Location    *Location        `json:"location,omitempty"`
	Quote       *QuoteAttachment `json:"quote,omitempty"`
}

// QuoteAttachment is the quote payload for AttachRequest.
type QuoteAttachment struct {
	Message    string          `json:"message,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	PaymentURL string          `json:"payment_url"`
	PaymentID  string          `json:"payment_id,omitempty"`
}

// Attach handles POST /conversations/{conversationID}/attachments
// requests: computes the fallback text for the kind, then appends the
// message with its metadata bag.
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req AttachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	att, status, err := h.compose(r, &req)
	if err != nil {
		if errors.Is(err, ErrUnknownReferent) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}

	appendReq := &AppendMessageRequest{
		ConversationID: conversationID,
		SenderID:       req.SenderID,
		SenderType:     req.SenderType,
		Content:        att.Content,
		Metadata:       att.Metadata,
	}
	if req.Kind == KindQuotePayment {
		appendReq.QuotePaymentStatus = PaymentStatusPending
	}

	msg, err := h.repo.Append(r.Context(), appendReq)
	if err != nil {
		h.writeMessageError(w, "attach", err)
		return
	}

	h.afterAppend(msg)
	writeMessageJSON(w, http.StatusCreated, msg)
}

func (h *Handler) compose(r *http.Request, req *AttachRequest) (Attachment, int, error) {
	switch req.Kind {
	case KindService, KindProgram, KindChallenge:
		snap, err := h.snapshot(r)
		if err != nil {
			return Attachment{}, http.StatusInternalServerError, err
		}
		switch req.Kind {
		case KindService:
			svc, ok := snap.ServiceByID(req.ServiceID)
			if !ok {
				return Attachment{}, 0, ErrUnknownReferent
			}
			return AttachService(svc), 0, nil
		case KindProgram:
			p, ok := snap.ProgramByID(req.ProgramID)
			if !ok {
				return Attachment{}, 0, ErrUnknownReferent
			}
			return AttachProgram(p), 0, nil
		default:
			c, ok := snap.ChallengeByID(req.ChallengeID)
			if !ok {
				return Attachment{}, 0, ErrUnknownReferent
			}
			return AttachChallenge(c), 0, nil
		}
	case KindAvailability:
		if req.Slot == nil {
			return Attachment{}, http.StatusBadRequest, errors.New("slot payload required")
		}
		return AttachSlot(*req.Slot), 0, nil
	case KindLocation:
		if req.Location == nil {
			return Attachment{}, http.StatusBadRequest, errors.New("location payload required")
		}
		return AttachLocation(*req.Location), 0, nil
	case KindQuotePayment:
		if req.Quote == nil || req.Quote.PaymentURL == "" {
			return Attachment{}, http.StatusBadRequest, errors.New("quote payload with payment_url required")
		}
		q := req.Quote
		return AttachQuotePayment(q.Message, q.Amount, q.Currency, q.PaymentURL, q.PaymentID), 0, nil
	}
	return Attachment{}, http.StatusBadRequest, errors.New("unknown attachment kind")
}

// MarkRead handles POST /conversations/{conversationID}/read requests.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req struct {
		ReaderID string `json:"reader_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReaderID == "" {
		http.Error(w, "reader_id is required", http.StatusBadRequest)
		return
	}

	n, err := h.repo.MarkRead(r.Context(), conversationID, req.ReaderID)
	if err != nil {
		h.writeMessageError(w, "mark read", err)
		return
	}

	writeMessageJSON(w, http.StatusOK, map[string]any{"marked_read": n})
}

// HandleWebSocket upgrades GET /conversations/{conversationID}/ws and
// streams new messages for the conversation. History is sent first so a
// connecting client needs no separate fetch.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r, conversationID)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request, conversationID string) {
	if _, err := h.repo.GetConversation(r.Context(), conversationID); err != nil {
		_ = websocket.JSON.Send(conn, map[string]string{"error": "conversation not found"})
		return
	}

	if history, err := h.repo.ListMessages(r.Context(), conversationID, time.Time{}); err == nil {
		for _, m := range history {
			_ = websocket.JSON.Send(conn, m)
		}
	}

	if h.hub == nil {
		return
	}
	h.hub.Register(conversationID, conn)
	defer h.hub.Unregister(conversationID, conn)

	h.logger.Info("messages: websocket opened", "conversation_id", conversationID)

	// Reads only keep the connection alive; clients send via HTTP.
	for {
		var discard json.RawMessage
		if err := websocket.JSON.Receive(conn, &discard); err != nil {
			h.logger.Debug("messages: websocket closed", "conversation_id", conversationID, "error", err)
			return
		}
	}
}

func (h *Handler) afterAppend(msg *Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
	if h.metrics != nil {
		h.metrics.MessageSent(string(msg.Metadata.Kind()))
	}
}

// snapshot loads the catalog view used for attach validation and render
// decisions. A nil store yields an empty snapshot so everything falls
// back to plain text.
func (h *Handler) snapshot(r *http.Request) (*catalog.Snapshot, error) {
	if h.catalog == nil {
		return catalog.NewSnapshot(nil, nil, nil), nil
	}
	return h.catalog.Snapshot(r.Context())
}

func (h *Handler) writeMessageError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound), errors.Is(err, ErrMessageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrMissingConversation),
		errors.Is(err, ErrMissingSender),
		errors.Is(err, ErrInvalidSenderType),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, errMultipleKinds):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("messages: "+action+" failed", "error", err)
		http.Error(w, "Request failed", http.StatusInternalServerError)
	}
}

func writeMessageJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
