package messages

import (
	"strings"
	"time"
)

// Sender roles on a conversation.
const (
	SenderPatient      = "patient"
	SenderProfessional = "professional"
)

// Quote payment lifecycle states carried on a message.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
)

// Conversation links a patient and a professional.
type Conversation struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	ProfessionalID string    `json:"professional_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Message is one entry in a conversation. Content always carries a
// human-readable text so clients that ignore Metadata still show
// something sensible.
type Message struct {
	ID                 string     `json:"id"`
	ConversationID     string     `json:"conversation_id"`
	SenderID           string     `json:"sender_id"`
	SenderType         string     `json:"sender_type"`
	Content            string     `json:"content"`
	Metadata           Metadata   `json:"metadata"`
	QuotePaymentStatus string     `json:"quote_payment_status,omitempty"`
	IsRead             bool       `json:"is_read"`
	ReadAt             *time.Time `json:"read_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AppendMessageRequest is the payload for adding a message to a
// conversation. Attachment endpoints build Content and Metadata via the
// composer; the plain-text endpoint leaves Metadata zero.
type AppendMessageRequest struct {
	ConversationID     string   `json:"conversation_id"`
	SenderID           string   `json:"sender_id"`
	SenderType         string   `json:"sender_type"`
	Content            string   `json:"content"`
	Metadata           Metadata `json:"metadata"`
	QuotePaymentStatus string   `json:"-"`
}

// Validate checks the request before it reaches storage.
func (r *AppendMessageRequest) Validate() error {
	if strings.TrimSpace(r.ConversationID) == "" {
		return ErrMissingConversation
	}
	if strings.TrimSpace(r.SenderID) == "" {
		return ErrMissingSender
	}
	if r.SenderType != SenderPatient && r.SenderType != SenderProfessional {
		return ErrInvalidSenderType
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	return r.Metadata.Validate()
}
