package companies

import (
	"testing"
	"time"

	"github.com/bloomwell/wellness-platform/internal/leads"
)

func TestGrowthPercentage(t *testing.T) {
	cases := []struct {
		current  int
		previous int
		want     string
	}{
		{0, 0, "0%"},
		{5, 0, "+100%"},
		{10, 5, "+100%"},
		{5, 10, "-50%"},
		{10, 10, "0%"},
		{4, 3, "+33%"},
	}
	for _, tc := range cases {
		got := GrowthPercentage(tc.current, tc.previous)
		if got != tc.want {
			t.Errorf("GrowthPercentage(%d, %d) = %q, want %q", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	cs := []*Company{
		{ID: "c1", Name: "Acme", Status: StatusActive, CreatedAt: thisMonth},
		{ID: "c2", Name: "Globex", Status: StatusPending, CreatedAt: lastMonth},
	}
	ls := []*leads.CompanyLead{
		{ID: "l1", Status: leads.StatusPending, CreatedAt: thisMonth},
		{ID: "l2", Status: leads.StatusContacted, CreatedAt: lastMonth},
		{ID: "l3", Status: leads.StatusQuoted, CreatedAt: older},
		{ID: "l4", Status: leads.StatusConverted, CreatedAt: older},
	}

	stats := ComputeStats(cs, ls, now)

	if stats.Total != 6 {
		t.Errorf("expected total 6, got %d", stats.Total)
	}
	if stats.TotalCompanies != 2 || stats.TotalLeads != 4 {
		t.Errorf("expected 2 companies / 4 leads, got %d / %d", stats.TotalCompanies, stats.TotalLeads)
	}
	// contacted counts leads in contacted, quoted or converted
	if stats.Contacted != 3 {
		t.Errorf("expected contacted 3, got %d", stats.Contacted)
	}
	// pending counts pending leads plus pending companies
	if stats.Pending != 2 {
		t.Errorf("expected pending 2, got %d", stats.Pending)
	}
	if stats.ThisMonthTotal != 2 {
		t.Errorf("expected this month total 2, got %d", stats.ThisMonthTotal)
	}
	// 2 this month vs 2 last month
	if stats.GrowthPercentage != "0%" {
		t.Errorf("expected growth 0%%, got %s", stats.GrowthPercentage)
	}
}

func TestComputeStats_EmptyPreviousMonth(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	cs := []*Company{
		{ID: "c1", Name: "Acme", Status: StatusActive, CreatedAt: now.AddDate(0, 0, -1)},
	}

	stats := ComputeStats(cs, nil, now)

	if stats.GrowthPercentage != "+100%" {
		t.Errorf("expected +100%% with empty previous month, got %s", stats.GrowthPercentage)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now().UTC())
	if stats.Total != 0 || stats.GrowthPercentage != "0%" {
		t.Errorf("unexpected stats for empty input: %+v", stats)
	}
}
