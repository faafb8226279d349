package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/internal/messages"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// RecipientResolver finds the notification address for a conversation's
// professional.
type RecipientResolver interface {
	ProfessionalEmail(ctx context.Context, conversationID string) (email, name string, err error)
}

// StaticResolver routes every notification to one operations inbox.
// Useful until per-professional notification addresses exist.
type StaticResolver struct {
	Email string
	Name  string
}

func (r StaticResolver) ProfessionalEmail(ctx context.Context, conversationID string) (string, string, error) {
	if r.Email == "" {
		return "", "", fmt.Errorf("notify: no operations inbox configured")
	}
	return r.Email, r.Name, nil
}

// Service turns outbox entries into operator notifications. It is the
// delivery handler behind the outbox poller.
type Service struct {
	email     EmailSender
	recipient RecipientResolver
	logger    *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, recipient RecipientResolver, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, recipient: recipient, logger: logger}
}

// Handle routes one outbox entry. Unknown event types are delivered as
// no-ops so old entries never wedge the queue.
func (s *Service) Handle(ctx context.Context, entry events.OutboxEntry) error {
	switch entry.Type {
	case events.TypePaymentSucceeded:
		var evt events.PaymentSucceededV1
		if err := json.Unmarshal(entry.Payload, &evt); err != nil {
			return fmt.Errorf("notify: decode payment event: %w", err)
		}
		return s.notifyPaymentSuccess(ctx, evt)
	case events.TypeQuoteEmailed, events.TypeLeadConverted:
		s.logger.Debug("notify: event acknowledged", "type", entry.Type, "event_id", entry.ID)
		return nil
	default:
		s.logger.Warn("notify: unknown event type, dropping", "type", entry.Type, "event_id", entry.ID)
		return nil
	}
}

func (s *Service) notifyPaymentSuccess(ctx context.Context, evt events.PaymentSucceededV1) error {
	if s.email == nil || s.recipient == nil {
		s.logger.Debug("notify: email not configured, skipping payment notification", "payment_id", evt.PaymentID)
		return nil
	}

	email, name, err := s.recipient.ProfessionalEmail(ctx, evt.ConversationID)
	if err != nil {
		return fmt.Errorf("notify: resolve recipient: %w", err)
	}

	amount := decimal.NewFromInt(evt.AmountCents).Div(decimal.NewFromInt(100))
	formatted := messages.FormatAmount(amount, evt.Currency)

	msg := EmailMessage{
		To:      email,
		ToName:  name,
		Subject: "Pago recibido: " + formatted,
		Body: fmt.Sprintf("Recibiste un pago de %s.\n\nReferencia: %s\nProveedor: %s\n",
			formatted, evt.ProviderRef, evt.Provider),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: payment success email: %w", err)
	}

	s.logger.Info("payment notification sent", "payment_id", evt.PaymentID, "to", email)
	return nil
}
