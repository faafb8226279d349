package messages

import "github.com/bloomwell/wellness-platform/internal/catalog"

// RenderKind names the card a client should draw for a message.
type RenderKind string

const (
	RenderService      RenderKind = "service"
	RenderAvailability RenderKind = "availability"
	RenderProgram      RenderKind = "program"
	RenderChallenge    RenderKind = "challenge"
	RenderLocation     RenderKind = "location"
	RenderQuotePayment RenderKind = "quote_payment"
	RenderPlainText    RenderKind = "plain_text"
)

// Rendering is the render-side decision for one message.
type Rendering struct {
	Kind RenderKind
	// Paid is set on quote cards whose payment already succeeded.
	Paid bool
	// Quote carries the parsed template for quote cards.
	Quote *QuotePaymentContent
}

// RenderKindOf decides which card to render, first match wins:
// service, availability slot, program, challenge, location, then the
// quote text template, then plain text. A metadata bag whose referent is
// unknown in the snapshot falls back to plain text for every kind; the
// presence of structured metadata still short-circuits the text-template
// check, so a broken referent never half-renders as a quote card.
func RenderKindOf(msg *Message, known *catalog.Snapshot) Rendering {
	md := msg.Metadata
	switch {
	case md.ServiceID != "":
		if _, ok := known.ServiceByID(md.ServiceID); ok {
			return Rendering{Kind: RenderService}
		}
		return Rendering{Kind: RenderPlainText}
	case md.Slot != nil:
		return Rendering{Kind: RenderAvailability}
	case md.ProgramID != "":
		if _, ok := known.ProgramByID(md.ProgramID); ok {
			return Rendering{Kind: RenderProgram}
		}
		return Rendering{Kind: RenderPlainText}
	case md.ChallengeID != "":
		if _, ok := known.ChallengeByID(md.ChallengeID); ok {
			return Rendering{Kind: RenderChallenge}
		}
		return Rendering{Kind: RenderPlainText}
	case md.Location != nil:
		return Rendering{Kind: RenderLocation}
	}

	if qc := ParseQuotePaymentText(msg.Content); qc != nil {
		return Rendering{
			Kind:  RenderQuotePayment,
			Paid:  msg.QuotePaymentStatus == PaymentStatusSucceeded,
			Quote: qc,
		}
	}
	return Rendering{Kind: RenderPlainText}
}
