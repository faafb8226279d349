package messages

import (
	"regexp"
	"strings"
)

const (
	quoteMarker = "Cotización:"
	payMarker   = "Puedes pagar aquí:"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// QuotePaymentContent is the parsed form of a quote message body.
type QuotePaymentContent struct {
	OptionalMessage string
	PriceLine       string
	PaymentURL      string
}

// ParseQuotePaymentText recognizes the quote template inside a message
// body: a line containing "Cotización:" (an emoji or other prefix on
// that line is tolerated) followed later by "Puedes pagar aquí:" and an
// http(s) URL. Returns nil if either the price line or the URL is
// missing, so callers fall back to plain text instead of rendering a
// partial card.
func ParseQuotePaymentText(content string) *QuotePaymentContent {
	idx := strings.Index(content, quoteMarker)
	if idx < 0 {
		return nil
	}

	// Everything before the marker's line is the optional message.
	before := content[:idx]
	if nl := strings.LastIndex(before, "\n"); nl >= 0 {
		before = before[:nl]
	} else {
		before = ""
	}
	optional := strings.TrimSpace(before)
	if i := strings.Index(optional, payMarker); i >= 0 {
		optional = strings.TrimSpace(optional[:i])
	}

	rest := content[idx+len(quoteMarker):]
	priceLine := rest
	after := ""
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		priceLine, after = rest[:nl], rest[nl:]
	}
	priceLine = strings.TrimSpace(priceLine)
	if priceLine == "" {
		return nil
	}

	payIdx := strings.Index(after, payMarker)
	if payIdx < 0 {
		return nil
	}
	url := urlPattern.FindString(after[payIdx:])
	if url == "" {
		return nil
	}

	return &QuotePaymentContent{
		OptionalMessage: optional,
		PriceLine:       priceLine,
		PaymentURL:      url,
	}
}
