package messages

import "errors"

// Kind identifies which structured attachment a message carries.
type Kind string

const (
	KindNone         Kind = "none"
	KindService      Kind = "service"
	KindAvailability Kind = "availability"
	KindProgram      Kind = "program"
	KindChallenge    Kind = "challenge"
	KindLocation     Kind = "location"
	KindQuotePayment Kind = "quote_payment"
)

// Slot is a shared availability slot (one-hour window on a date).
type Slot struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
	Type  string `json:"type,omitempty"`
}

// Location is a shared physical address.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country,omitempty"`
}

// Metadata is the structured attachment bag on a message. At most one
// field is set; a plain text message carries the zero value. Stored as
// JSONB so older rows with no bag decode to the zero value.
type Metadata struct {
	ServiceID      string    `json:"service_id,omitempty"`
	Slot           *Slot     `json:"availability_slot,omitempty"`
	ProgramID      string    `json:"program_id,omitempty"`
	ChallengeID    string    `json:"challenge_id,omitempty"`
	Location       *Location `json:"location,omitempty"`
	QuotePaymentID string    `json:"quote_payment_id,omitempty"`
}

var errMultipleKinds = errors.New("messages: metadata carries more than one attachment kind")

// Kind reports which attachment the bag carries, or KindNone.
func (m Metadata) Kind() Kind {
	switch {
	case m.ServiceID != "":
		return KindService
	case m.Slot != nil:
		return KindAvailability
	case m.ProgramID != "":
		return KindProgram
	case m.ChallengeID != "":
		return KindChallenge
	case m.Location != nil:
		return KindLocation
	case m.QuotePaymentID != "":
		return KindQuotePayment
	}
	return KindNone
}

// Validate rejects bags with more than one attachment kind set.
func (m Metadata) Validate() error {
	set := 0
	if m.ServiceID != "" {
		set++
	}
	if m.Slot != nil {
		set++
	}
	if m.ProgramID != "" {
		set++
	}
	if m.ChallengeID != "" {
		set++
	}
	if m.Location != nil {
		set++
	}
	if m.QuotePaymentID != "" {
		set++
	}
	if set > 1 {
		return errMultipleKinds
	}
	return nil
}

// IsZero reports whether the bag carries no attachment at all.
func (m Metadata) IsZero() bool {
	return m.Kind() == KindNone
}
