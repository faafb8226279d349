package events

import "time"

// Event type names stored in the outbox.
const (
	TypePaymentSucceeded = "payment.succeeded.v1"
	TypeQuoteEmailed     = "quote.emailed.v1"
	TypeLeadConverted    = "lead.converted.v1"
)

// PaymentSucceededV1 is emitted after a payment provider confirms a
// quote payment and the owning message was flipped to succeeded.
type PaymentSucceededV1 struct {
	EventID        string    `json:"event_id"`
	PaymentID      string    `json:"payment_id"`
	ConversationID string    `json:"conversation_id,omitempty"`
	MessageID      string    `json:"message_id,omitempty"`
	Provider       string    `json:"provider"`
	ProviderRef    string    `json:"provider_ref"`
	AmountCents    int64     `json:"amount_cents"`
	Currency       string    `json:"currency"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// QuoteEmailedV1 is emitted when a quote was delivered by email and the
// source lead advanced to quoted.
type QuoteEmailedV1 struct {
	EventID    string    `json:"event_id"`
	QuoteID    string    `json:"quote_id"`
	LeadID     string    `json:"lead_id"`
	Recipient  string    `json:"recipient"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	SentAt     time.Time `json:"sent_at"`
}

// LeadConvertedV1 is emitted when an admin converts a lead into a company.
type LeadConvertedV1 struct {
	EventID     string    `json:"event_id"`
	LeadID      string    `json:"lead_id"`
	CompanyID   string    `json:"company_id"`
	ConvertedAt time.Time `json:"converted_at"`
}
