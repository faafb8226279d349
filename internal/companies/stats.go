package companies

import (
	"fmt"
	"math"
	"time"

	"github.com/bloomwell/wellness-platform/internal/leads"
)

// Stats summarizes the companies-and-leads directory for the admin dashboard.
type Stats struct {
	Total            int    `json:"total"`
	TotalCompanies   int    `json:"total_companies"`
	TotalLeads       int    `json:"total_leads"`
	Contacted        int    `json:"contacted"`
	Pending          int    `json:"pending"`
	ThisMonthTotal   int    `json:"this_month_total"`
	GrowthPercentage string `json:"growth_percentage"`
}

// ComputeStats derives dashboard statistics from the full company and lead
// collections. Pure: the reference time is explicit so results are
// reproducible.
func ComputeStats(companies []*Company, companyLeads []*leads.CompanyLead, now time.Time) Stats {
	stats := Stats{
		TotalCompanies: len(companies),
		TotalLeads:     len(companyLeads),
		Total:          len(companies) + len(companyLeads),
	}

	for _, l := range companyLeads {
		switch l.Status {
		case leads.StatusContacted, leads.StatusQuoted, leads.StatusConverted:
			stats.Contacted++
		case leads.StatusPending:
			stats.Pending++
		}
	}
	for _, c := range companies {
		if c.Status == StatusPending {
			stats.Pending++
		}
	}

	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var thisMonth, lastMonth int
	count := func(t time.Time) {
		switch {
		case !t.Before(thisMonthStart):
			thisMonth++
		case !t.Before(lastMonthStart):
			lastMonth++
		}
	}
	for _, c := range companies {
		count(c.CreatedAt)
	}
	for _, l := range companyLeads {
		count(l.CreatedAt)
	}

	stats.ThisMonthTotal = thisMonth
	stats.GrowthPercentage = GrowthPercentage(thisMonth, lastMonth)
	return stats
}

// GrowthPercentage formats month-over-month growth. A zero previous month
// yields "+100%" when the current month has records and "0%" otherwise; this
// asymmetry is load-bearing for dashboard parity.
func GrowthPercentage(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	pct := int(math.Round(float64(current-previous) / float64(previous) * 100))
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}
