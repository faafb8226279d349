package quotes

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bloomwell/wellness-platform/internal/catalog"
)

func builderSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot([]catalog.Service{
		{ID: "s1", Name: "Masaje relajante", Price: decimal.NewFromInt(500)},
		{ID: "s2", Name: "Acupuntura", Price: decimal.NewFromInt(800)},
	}, nil, nil)
}

func TestAddService_UnknownIDIsNoOp(t *testing.T) {
	q := &Quote{}
	snap := builderSnapshot()

	if q.AddService(snap, "missing") {
		t.Error("unknown service must not be added")
	}
	if len(q.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(q.Lines))
	}
}

func TestAddService_SeedsNameOnly(t *testing.T) {
	q := &Quote{}
	snap := builderSnapshot()

	if !q.AddService(snap, "s1") {
		t.Fatal("known service must be added")
	}
	line := q.Lines[0]
	if line.ServiceName != "Masaje relajante" {
		t.Errorf("name = %q", line.ServiceName)
	}
	// The catalog price is a suggestion the admin types in later; the
	// seeded line starts unpriced and unassigned.
	if !line.UnitPrice.IsZero() {
		t.Errorf("seeded unit price = %s, want 0", line.UnitPrice)
	}
	if line.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", line.Quantity)
	}
	if len(line.ProfessionalIDs) != 0 || len(line.ProfessionalNames) != 0 {
		t.Errorf("seeded line must have no assignees, got %+v", line)
	}
	if line.Notes != "" {
		t.Errorf("seeded notes = %q, want empty", line.Notes)
	}
}

func TestUpdateAndRemoveLine(t *testing.T) {
	q := &Quote{}
	snap := builderSnapshot()
	q.AddService(snap, "s1")
	q.AddService(snap, "s2")

	q.UpdateLine(0, decimal.NewFromInt(450), 3)
	if q.Lines[0].UnitPrice.Cmp(decimal.NewFromInt(450)) != 0 || q.Lines[0].Quantity != 3 {
		t.Errorf("updated line = %+v", q.Lines[0])
	}

	// Out-of-range and negative updates are ignored.
	q.UpdateLine(5, decimal.NewFromInt(1), 1)
	q.UpdateLine(0, decimal.NewFromInt(-1), 1)
	if q.Lines[0].UnitPrice.Cmp(decimal.NewFromInt(450)) != 0 {
		t.Error("invalid update must not touch the line")
	}

	q.RemoveLine(0)
	if len(q.Lines) != 1 || q.Lines[0].ServiceID != "s2" {
		t.Errorf("lines after remove = %+v", q.Lines)
	}
	q.RemoveLine(9)
	if len(q.Lines) != 1 {
		t.Error("out-of-range remove must be a no-op")
	}
}

func TestTotals_DiscountRange(t *testing.T) {
	q := &Quote{Lines: []LineItem{
		{UnitPrice: decimal.NewFromInt(500), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("99.99"), Quantity: 3},
	}}

	for d := 0; d <= 100; d += 5 {
		q.DiscountPct = decimal.NewFromInt(int64(d))
		subtotal := q.Subtotal()
		total := q.Total()

		wantTotal := subtotal.Sub(subtotal.Mul(q.DiscountPct).Div(decimal.NewFromInt(100)))
		if total.Cmp(wantTotal) != 0 {
			t.Errorf("d=%d: total = %s, want %s", d, total, wantTotal)
		}
		if total.GreaterThan(subtotal) {
			t.Errorf("d=%d: total %s exceeds subtotal %s", d, total, subtotal)
		}
	}
}

func TestTotals_ExampleScenario(t *testing.T) {
	q := &Quote{
		Lines:       []LineItem{{UnitPrice: decimal.NewFromInt(500), Quantity: 2}},
		DiscountPct: decimal.NewFromInt(10),
	}
	if q.Subtotal().Cmp(decimal.NewFromInt(1000)) != 0 {
		t.Errorf("subtotal = %s", q.Subtotal())
	}
	if q.Total().Cmp(decimal.NewFromInt(900)) != 0 {
		t.Errorf("total = %s, want 900", q.Total())
	}
}

func TestValidate(t *testing.T) {
	base := Quote{Lines: []LineItem{{UnitPrice: decimal.NewFromInt(100), Quantity: 1}}}

	empty := Quote{}
	if err := empty.Validate(0); err != ErrNoLineItems {
		t.Errorf("err = %v, want ErrNoLineItems", err)
	}

	over := base
	over.DiscountPct = decimal.NewFromInt(101)
	if err := over.Validate(0); err != ErrInvalidDiscount {
		t.Errorf("err = %v, want ErrInvalidDiscount", err)
	}

	long := base
	for i := 0; i < 1001; i++ {
		long.Notes += "a"
	}
	if err := long.Validate(0); err != ErrNotesTooLong {
		t.Errorf("err = %v, want ErrNotesTooLong", err)
	}

	// The per-line notes get the same limit as the quote-level notes.
	lineNotes := Quote{Lines: []LineItem{{
		UnitPrice: decimal.NewFromInt(100),
		Quantity:  1,
		Notes:     strings.Repeat("b", 1001),
	}}}
	if err := lineNotes.Validate(0); err != ErrNotesTooLong {
		t.Errorf("err = %v, want ErrNotesTooLong for line notes", err)
	}

	// Tags do not count against the limit.
	tagged := base
	tagged.Notes = "<p><strong>hola</strong></p>"
	if err := tagged.Validate(5); err != nil {
		t.Errorf("err = %v, want nil for short stripped notes", err)
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<p>Hola <strong>mundo</strong></p>", "Hola mundo"},
		{"sin etiquetas", "sin etiquetas"},
		{"&aacute;rea &amp; spa", "área & spa"},
		{"  <br/>  ", ""},
	}
	for _, tc := range cases {
		if got := StripHTML(tc.in); got != tc.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
