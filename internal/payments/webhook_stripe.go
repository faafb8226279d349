package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/internal/messages"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// processedTracker answers whether a provider event was already handled.
type processedTracker interface {
	AlreadyProcessed(ctx context.Context, provider, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, provider, eventID string) (bool, error)
}

// outboxWriter persists events for downstream delivery.
type outboxWriter interface {
	Insert(ctx context.Context, eventType string, payload any) (uuid.UUID, error)
}

// messageUpdater flips the quote message matching a payment id.
type messageUpdater interface {
	UpdateQuotePaymentStatus(ctx context.Context, quotePaymentID, status string) (*messages.Message, error)
}

// latencyRecorder observes webhook processing time per event type.
type latencyRecorder interface {
	ObserveWebhookLatency(eventType string, seconds float64)
}

// statusBroadcaster pushes the updated quote message to live chat
// subscribers.
type statusBroadcaster interface {
	Broadcast(msg *messages.Message)
}

// StripeWebhookHandler handles Stripe checkout.session.completed events:
// marks the payment succeeded, updates the quote message in place, and
// enqueues a PaymentSucceededV1 for notification delivery.
type StripeWebhookHandler struct {
	webhookSecret string
	payments      Repository
	messages      messageUpdater
	processed     processedTracker
	outbox        outboxWriter
	metrics       latencyRecorder
	broadcast     statusBroadcaster
	logger        *logging.Logger
}

// WithMetrics attaches a latency recorder and returns the handler.
func (h *StripeWebhookHandler) WithMetrics(m latencyRecorder) *StripeWebhookHandler {
	h.metrics = m
	return h
}

// WithBroadcaster attaches a live chat broadcaster and returns the handler.
func (h *StripeWebhookHandler) WithBroadcaster(b statusBroadcaster) *StripeWebhookHandler {
	h.broadcast = b
	return h
}

// NewStripeWebhookHandler creates a handler for Stripe webhooks. The
// outbox may be nil when event delivery is disabled.
func NewStripeWebhookHandler(
	webhookSecret string,
	paymentsRepo Repository,
	messagesRepo messageUpdater,
	processed processedTracker,
	outbox outboxWriter,
	logger *logging.Logger,
) *StripeWebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StripeWebhookHandler{
		webhookSecret: webhookSecret,
		payments:      paymentsRepo,
		messages:      messagesRepo,
		processed:     processed,
		outbox:        outbox,
		logger:        logger,
	}
}

// Handle processes incoming Stripe webhook events.
func (h *StripeWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if !verifyStripeSignature(h.webhookSecret, payload, r.Header.Get("Stripe-Signature")) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var evt stripeWebhookEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		h.logger.Error("failed to decode stripe event", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if evt.ID == "" {
		http.Error(w, "missing event id", http.StatusBadRequest)
		return
	}
	if h.metrics != nil {
		defer func() {
			h.metrics.ObserveWebhookLatency(evt.Type, time.Since(started).Seconds())
		}()
	}

	if evt.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if done, err := h.processed.AlreadyProcessed(r.Context(), "stripe", evt.ID); err != nil {
		h.logger.Error("processed lookup failed", "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	} else if done {
		w.WriteHeader(http.StatusOK)
		return
	}

	session := evt.Data.Object
	paymentID := session.Metadata["payment_id"]
	if paymentID == "" {
		// Acknowledge so Stripe stops retrying an event we cannot route.
		h.logger.Warn("stripe webhook missing payment_id metadata", "event_id", evt.ID)
		w.WriteHeader(http.StatusOK)
		return
	}

	providerRef := session.PaymentIntent
	if providerRef == "" {
		providerRef = session.ID
	}

	payment, err := h.payments.MarkSucceeded(r.Context(), paymentID, providerRef)
	if err != nil {
		h.logger.Error("failed to mark payment succeeded", "error", err, "payment_id", paymentID)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	var messageID string
	if msg, err := h.messages.UpdateQuotePaymentStatus(r.Context(), paymentID, messages.PaymentStatusSucceeded); err != nil {
		// The quote may have been emailed rather than shared in chat.
		h.logger.Info("no chat message for payment", "payment_id", paymentID, "error", err)
	} else {
		messageID = msg.ID
		if h.broadcast != nil {
			h.broadcast.Broadcast(msg)
		}
	}

	if h.outbox != nil {
		_, err := h.outbox.Insert(r.Context(), events.TypePaymentSucceeded, events.PaymentSucceededV1{
			EventID:        evt.ID,
			PaymentID:      payment.ID,
			ConversationID: payment.ConversationID,
			MessageID:      messageID,
			Provider:       "stripe",
			ProviderRef:    providerRef,
			AmountCents:    payment.AmountCents,
			Currency:       payment.Currency,
			OccurredAt:     time.Now().UTC(),
		})
		if err != nil {
			h.logger.Error("failed to enqueue payment event", "error", err, "payment_id", paymentID)
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	}

	if _, err := h.processed.MarkProcessed(r.Context(), "stripe", evt.ID); err != nil {
		h.logger.Error("failed to record processed event", "error", err, "event_id", evt.ID)
	}

	h.logger.Info("stripe payment confirmed", "payment_id", paymentID, "provider_ref", providerRef)
	w.WriteHeader(http.StatusOK)
}

// stripeWebhookEvent is the subset of a Stripe event we consume.
type stripeWebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object stripeSession `json:"object"`
	} `json:"data"`
}

type stripeSession struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
	Status        string            `json:"status"`
}

// verifyStripeSignature verifies a Stripe webhook signature.
// Stripe signs with HMAC-SHA256 and sends the signature in the
// Stripe-Signature header as: t=<timestamp>,v1=<signature>[,v0=...].
func verifyStripeSignature(secret string, payload []byte, header string) bool {
	if secret == "" {
		return true // bypass for development
	}
	if header == "" {
		return false
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if abs64(time.Now().Unix()-ts) > 300 {
		return false
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
