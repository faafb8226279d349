package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Service creates payment records with their hosted links. The link is
// requested first so a provider failure leaves no dangling row.
type Service struct {
	repo   Repository
	links  LinkCreator
	logger *logging.Logger
}

// NewService creates a payments service.
func NewService(repo Repository, links LinkCreator, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, links: links, logger: logger}
}

// CreateQuotePayment makes a pending payment with a hosted link for a
// quote shared in a conversation.
func (s *Service) CreateQuotePayment(ctx context.Context, conversationID, professionalID, description string, amount decimal.Decimal, currency string) (*Payment, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("payments: amount must be positive, got %s", amount)
	}

	id := uuid.New().String()
	amountCents := amount.Shift(2).Round(0).IntPart()

	link, err := s.links.CreateLink(ctx, LinkParams{
		PaymentID:      id,
		ConversationID: conversationID,
		Description:    description,
		AmountCents:    amountCents,
		Currency:       currency,
	})
	if err != nil {
		return nil, fmt.Errorf("payments: create link: %w", err)
	}

	p := &Payment{
		ID:             id,
		ConversationID: conversationID,
		ProfessionalID: professionalID,
		Description:    description,
		AmountCents:    amountCents,
		Currency:       currency,
		Provider:       "stripe",
		ProviderRef:    link.ProviderRef,
		URL:            link.URL,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment link created", "payment_id", p.ID, "amount_cents", amountCents, "currency", currency)
	return p, nil
}
