package payments

import (
	"errors"
	"time"
)

// Payment lifecycle states.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
)

// ErrPaymentNotFound is returned when no payment matches a lookup.
var ErrPaymentNotFound = errors.New("payments: payment not found")

// Payment is one quote payment collected through a hosted payment link.
type Payment struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	ProfessionalID string    `json:"professional_id"`
	Description    string    `json:"description"`
	AmountCents    int64     `json:"amount_cents"`
	Currency       string    `json:"currency"`
	Provider       string    `json:"provider"`
	ProviderRef    string    `json:"provider_ref,omitempty"`
	URL            string    `json:"url"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
