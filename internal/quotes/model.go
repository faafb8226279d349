package quotes

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/internal/catalog"
)

var (
	// ErrNoLineItems blocks emission of a quote without services.
	ErrNoLineItems = errors.New("quotes: at least one line item is required")

	// ErrNotesTooLong blocks emission when the notes exceed the limit.
	ErrNotesTooLong = errors.New("quotes: notes exceed the character limit")

	// ErrInvalidDiscount rejects discounts outside [0, 100].
	ErrInvalidDiscount = errors.New("quotes: discount must be between 0 and 100")

	// ErrQuoteNotFound is returned when no quote matches a lookup.
	ErrQuoteNotFound = errors.New("quotes: quote not found")
)

// DefaultNotesMaxChars bounds the free-text notes after HTML stripping.
const DefaultNotesMaxChars = 1000

// LineItem is one service row in a quote. Professionals assigned to the
// line travel as IDs with their display names alongside, so rendering a
// document never needs a directory lookup.
type LineItem struct {
	ServiceID         string          `json:"service_id"`
	ServiceName       string          `json:"service_name"`
	ProfessionalIDs   []string        `json:"professional_ids,omitempty"`
	ProfessionalNames []string        `json:"professional_names,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	Notes             string          `json:"notes,omitempty"`
}

// Amount is the line's extended price.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Quote is a multi-service offer built for a lead.
type Quote struct {
	ID          string          `json:"id"`
	LeadID      string          `json:"lead_id"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email"`
	Lines       []LineItem      `json:"lines"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Notes       string          `json:"notes,omitempty"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AddService appends a line for a catalog service. Unknown IDs are a
// silent no-op, mirroring how a stale picker entry should behave. The new
// line carries the catalog name only: price starts at zero, quantity at
// one, and no professionals assigned. Pricing and assignment are explicit
// follow-up edits.
func (q *Quote) AddService(snap *catalog.Snapshot, serviceID string) bool {
	svc, ok := snap.ServiceByID(serviceID)
	if !ok {
		return false
	}
	q.Lines = append(q.Lines, LineItem{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		UnitPrice:   decimal.Zero,
		Quantity:    1,
	})
	return true
}

// UpdateLine replaces the price and quantity of line i. Out-of-range
// indexes are ignored.
func (q *Quote) UpdateLine(i int, unitPrice decimal.Decimal, quantity int) {
	if i < 0 || i >= len(q.Lines) || quantity < 0 || unitPrice.Sign() < 0 {
		return
	}
	q.Lines[i].UnitPrice = unitPrice
	q.Lines[i].Quantity = quantity
}

// RemoveLine deletes line i, preserving the order of the rest.
func (q *Quote) RemoveLine(i int) {
	if i < 0 || i >= len(q.Lines) {
		return
	}
	q.Lines = append(q.Lines[:i], q.Lines[i+1:]...)
}

// Subtotal sums all extended line prices.
func (q *Quote) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range q.Lines {
		sum = sum.Add(li.Amount())
	}
	return sum
}

// DiscountAmount is subtotal * discount / 100.
func (q *Quote) DiscountAmount() decimal.Decimal {
	return q.Subtotal().Mul(q.DiscountPct).Div(decimal.NewFromInt(100))
}

// Total is the subtotal minus the discount.
func (q *Quote) Total() decimal.Decimal {
	return q.Subtotal().Sub(q.DiscountAmount())
}

// Validate checks the quote before any emission. maxNotesChars <= 0
// falls back to the default limit.
func (q *Quote) Validate(maxNotesChars int) error {
	if len(q.Lines) == 0 {
		return ErrNoLineItems
	}
	if q.DiscountPct.Sign() < 0 || q.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidDiscount
	}
	if maxNotesChars <= 0 {
		maxNotesChars = DefaultNotesMaxChars
	}
	if len([]rune(StripHTML(q.Notes))) > maxNotesChars {
		return ErrNotesTooLong
	}
	for _, li := range q.Lines {
		if len([]rune(StripHTML(li.Notes))) > maxNotesChars {
			return ErrNotesTooLong
		}
	}
	return nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML reduces rich-text notes to plain text: tags removed,
// entities decoded, whitespace collapsed at the edges.
func StripHTML(s string) string {
	stripped := htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(stripped))
}
