package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/internal/catalog"
)

// Attachment is the output of the send-side composer: the fallback text
// plus the metadata bag to store alongside it.
type Attachment struct {
	Content  string
	Metadata Metadata
}

// AttachService builds the share message for a catalog service.
func AttachService(svc catalog.Service) Attachment {
	return Attachment{
		Content:  "Te comparto mi servicio: " + svc.Name,
		Metadata: Metadata{ServiceID: svc.ID},
	}
}

// AttachProgram builds the share message for a digital program.
func AttachProgram(p catalog.Program) Attachment {
	return Attachment{
		Content:  "Te comparto mi programa: " + p.Title,
		Metadata: Metadata{ProgramID: p.ID},
	}
}

// AttachChallenge builds the share message for a challenge.
func AttachChallenge(c catalog.Challenge) Attachment {
	return Attachment{
		Content:  "Te comparto mi reto: " + c.Title,
		Metadata: Metadata{ChallengeID: c.ID},
	}
}

// AttachSlot builds the share message for an availability slot. The date
// is spelled out in Spanish so the fallback reads naturally without any
// client-side rendering.
func AttachSlot(slot Slot) Attachment {
	return Attachment{
		Content:  fmt.Sprintf("Cita disponible: %s de %s a %s", SpanishFullDate(slot.Date), slot.Start, slot.End),
		Metadata: Metadata{Slot: &slot},
	}
}

// AttachLocation builds the share message for a physical address.
func AttachLocation(loc Location) Attachment {
	return Attachment{
		Content:  fmt.Sprintf("Mi ubicación: %s, %s, %s", loc.Address, loc.City, loc.State),
		Metadata: Metadata{Location: &loc},
	}
}

// AttachQuotePayment composes the quote message: an optional free-text
// paragraph, the amount line, and the payment link, separated by blank
// lines. The metadata carries only the payment record ID so the webhook
// can later flip the message status in place.
func AttachQuotePayment(optionalMessage string, amount decimal.Decimal, currency, paymentURL, paymentID string) Attachment {
	parts := make([]string, 0, 3)
	if m := strings.TrimSpace(optionalMessage); m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, "💳 Cotización: "+FormatAmount(amount, currency))
	parts = append(parts, "Puedes pagar aquí: "+paymentURL)
	return Attachment{
		Content:  strings.Join(parts, "\n\n"),
		Metadata: Metadata{QuotePaymentID: paymentID},
	}
}

// FormatAmount renders an amount the way Mexican clients expect:
// "$1,200.00 MXN". Grouping is done on the fixed-point string so the
// output never picks up float rounding noise.
func FormatAmount(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := "$" + b.String() + "." + fracPart + " " + currency
	if neg {
		out = "-" + out
	}
	return out
}

var spanishWeekdays = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var spanishMonths = [...]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// SpanishFullDate renders a YYYY-MM-DD date as e.g.
// "lunes, 2 de septiembre de 2026". Unparseable input is returned as-is
// so a malformed slot still produces readable text.
func SpanishFullDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()], t.Year())
}
