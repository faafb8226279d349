package companies

import (
	"testing"
	"time"
)

func directory() []*Company {
	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []*Company{
		{ID: "1", Name: "Ándale Wellness", ContactEmail: "hola@andale.mx", City: "Guadalajara", Industry: "tech", Status: StatusActive, CreatedAt: base.AddDate(0, 0, 3)},
		{ID: "2", Name: "Bienestar Total", ContactEmail: "contacto@bienestar.mx", City: "CDMX", Industry: "retail", Status: StatusPending, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "3", Name: "zen corp", ContactEmail: "info@zencorp.mx", City: "Monterrey", Industry: "tech", Status: StatusActive, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

func TestFilterAndSort_Search(t *testing.T) {
	got := FilterAndSort(directory(), Filter{Search: "BIENESTAR"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected company 2, got %v", ids(got))
	}

	// substring match on city
	got = FilterAndSort(directory(), Filter{Search: "monte"})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected company 3, got %v", ids(got))
	}

	// substring match on email
	got = FilterAndSort(directory(), Filter{Search: "@andale"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected company 1, got %v", ids(got))
	}
}

func TestFilterAndSort_StatusAndIndustryCombine(t *testing.T) {
	got := FilterAndSort(directory(), Filter{Status: StatusActive, Industry: "tech"})
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %v", ids(got))
	}

	got = FilterAndSort(directory(), Filter{Status: StatusPending, Industry: "tech"})
	if len(got) != 0 {
		t.Fatalf("expected no companies, got %v", ids(got))
	}
}

func TestFilterAndSort_Ordering(t *testing.T) {
	got := FilterAndSort(directory(), Filter{SortBy: SortNewest})
	if want := []string{"1", "3", "2"}; !equal(ids(got), want) {
		t.Errorf("newest: got %v, want %v", ids(got), want)
	}

	got = FilterAndSort(directory(), Filter{SortBy: SortOldest})
	if want := []string{"2", "3", "1"}; !equal(ids(got), want) {
		t.Errorf("oldest: got %v, want %v", ids(got), want)
	}

	// locale-aware: Ándale sorts before Bienestar despite the accent, and
	// lowercase "zen corp" sorts last regardless of case.
	got = FilterAndSort(directory(), Filter{SortBy: SortNameAsc})
	if want := []string{"1", "2", "3"}; !equal(ids(got), want) {
		t.Errorf("name asc: got %v, want %v", ids(got), want)
	}

	got = FilterAndSort(directory(), Filter{SortBy: SortNameDesc})
	if want := []string{"3", "2", "1"}; !equal(ids(got), want) {
		t.Errorf("name desc: got %v, want %v", ids(got), want)
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	in := directory()
	first := in[0].ID
	FilterAndSort(in, Filter{SortBy: SortNameDesc})
	if in[0].ID != first {
		t.Error("input slice was reordered")
	}
}

func ids(cs []*Company) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
