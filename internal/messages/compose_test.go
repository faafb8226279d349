package messages

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/internal/catalog"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1200", "MXN", "$1,200.00 MXN"},
		{"900", "MXN", "$900.00 MXN"},
		{"999.5", "MXN", "$999.50 MXN"},
		{"1234567.89", "MXN", "$1,234,567.89 MXN"},
		{"0", "MXN", "$0.00 MXN"},
		{"50", "USD", "$50.00 USD"},
	}
	for _, tc := range cases {
		amount := decimal.RequireFromString(tc.amount)
		if got := FormatAmount(amount, tc.currency); got != tc.want {
			t.Errorf("FormatAmount(%s, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestAttachQuotePayment_ExactContent(t *testing.T) {
	att := AttachQuotePayment("", decimal.NewFromInt(1200), "MXN", "https://pay.example/abc", "pay_123")

	want := "💳 Cotización: $1,200.00 MXN\n\nPuedes pagar aquí: https://pay.example/abc"
	if att.Content != want {
		t.Errorf("content = %q, want %q", att.Content, want)
	}
	if att.Metadata.QuotePaymentID != "pay_123" {
		t.Errorf("metadata payment id = %q, want pay_123", att.Metadata.QuotePaymentID)
	}
	if att.Metadata.Kind() != KindQuotePayment {
		t.Errorf("metadata kind = %q, want %q", att.Metadata.Kind(), KindQuotePayment)
	}
}

func TestAttachQuotePayment_WithOptionalMessage(t *testing.T) {
	att := AttachQuotePayment("Como lo platicamos", decimal.NewFromInt(850), "MXN", "https://pay.example/x", "")

	want := "Como lo platicamos\n\n💳 Cotización: $850.00 MXN\n\nPuedes pagar aquí: https://pay.example/x"
	if att.Content != want {
		t.Errorf("content = %q, want %q", att.Content, want)
	}
	if !att.Metadata.IsZero() {
		t.Error("expected empty metadata when no payment id is provided")
	}
}

func TestAttachService(t *testing.T) {
	att := AttachService(catalog.Service{ID: "s1", Name: "Masaje descontracturante"})
	if att.Content != "Te comparto mi servicio: Masaje descontracturante" {
		t.Errorf("unexpected content %q", att.Content)
	}
	if att.Metadata.ServiceID != "s1" {
		t.Errorf("service id = %q, want s1", att.Metadata.ServiceID)
	}
}

func TestAttachProgramAndChallenge(t *testing.T) {
	prog := AttachProgram(catalog.Program{ID: "p1", Title: "Nutrición básica"})
	if prog.Content != "Te comparto mi programa: Nutrición básica" {
		t.Errorf("unexpected program content %q", prog.Content)
	}

	ch := AttachChallenge(catalog.Challenge{ID: "c1", Title: "21 días sin azúcar"})
	if ch.Content != "Te comparto mi reto: 21 días sin azúcar" {
		t.Errorf("unexpected challenge content %q", ch.Content)
	}
}

func TestAttachSlot(t *testing.T) {
	att := AttachSlot(Slot{Date: "2026-09-07", Start: "10:00", End: "11:00"})

	want := "Cita disponible: lunes, 7 de septiembre de 2026 de 10:00 a 11:00"
	if att.Content != want {
		t.Errorf("content = %q, want %q", att.Content, want)
	}
	if att.Metadata.Slot == nil || att.Metadata.Slot.Date != "2026-09-07" {
		t.Error("slot metadata not carried")
	}
}

func TestAttachLocation(t *testing.T) {
	att := AttachLocation(Location{Address: "Av. Reforma 100", City: "CDMX", State: "Ciudad de México"})
	want := "Mi ubicación: Av. Reforma 100, CDMX, Ciudad de México"
	if att.Content != want {
		t.Errorf("content = %q, want %q", att.Content, want)
	}
}

func TestSpanishFullDate_Unparseable(t *testing.T) {
	if got := SpanishFullDate("mañana"); got != "mañana" {
		t.Errorf("got %q, want input passed through", got)
	}
}

func TestMetadataValidate(t *testing.T) {
	ok := Metadata{ServiceID: "s1"}
	if err := ok.Validate(); err != nil {
		t.Errorf("single kind should validate, got %v", err)
	}

	bad := Metadata{ServiceID: "s1", ProgramID: "p1"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for two kinds set")
	}

	if (Metadata{}).Kind() != KindNone {
		t.Error("zero metadata should be KindNone")
	}
}
