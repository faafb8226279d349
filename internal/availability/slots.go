package availability

import (
	"fmt"
	"time"
)

// Slot is one bookable one-hour window.
type Slot struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
	Type  string `json:"type"`
}

// SlotTypeAvailable is the only slot type generated today; busy slots are
// simply omitted.
const SlotTypeAvailable = "available"

// WorkingConfig is a professional's recurring schedule. Days use ISO
// numbering, Monday=1 through Sunday=7.
type WorkingConfig struct {
	ProfessionalID string `json:"professional_id"`
	StartTime      string `json:"start_time"` // HH:MM
	EndTime        string `json:"end_time"`   // HH:MM
	WorkingDays    []int  `json:"working_days"`
}

// Appointment occupies one exact hour on a date.
type Appointment struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// Block removes availability over a date span, either whole days or a
// daily time range.
type Block struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, inclusive
	FullDay   bool   `json:"full_day"`
	StartTime string `json:"start_time,omitempty"` // HH:MM, when not full day
	EndTime   string `json:"end_time,omitempty"`   // HH:MM, exclusive
}

const (
	// DefaultHorizonDays is how far ahead slots are generated.
	DefaultHorizonDays = 14
	// DefaultSlotCap bounds the number of slots returned.
	DefaultSlotCap = 20
)

// GenerateSlots produces the bookable hourly slots for the horizonDays
// days starting at from, capped at cap entries, ordered by (date, start)
// ascending. It is a pure function: the same inputs always yield the
// same list.
func GenerateSlots(cfg WorkingConfig, appointments []Appointment, blocks []Block, from time.Time, horizonDays, cap int) []Slot {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if cap <= 0 {
		cap = DefaultSlotCap
	}

	startHour, okStart := parseHour(cfg.StartTime)
	endHour, okEnd := parseHour(cfg.EndTime)
	if !okStart || !okEnd || endHour <= startHour {
		return []Slot{}
	}

	workdays := make(map[int]bool, len(cfg.WorkingDays))
	for _, d := range cfg.WorkingDays {
		workdays[d] = true
	}

	taken := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		if h, ok := parseHour(a.Time); ok {
			taken[fmt.Sprintf("%s %02d", a.Date, h)] = true
		}
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	slots := make([]Slot, 0, cap)

	for i := 0; i < horizonDays; i++ {
		date := day.AddDate(0, 0, i)
		dateStr := date.Format("2006-01-02")

		if !workdays[isoWeekday(date)] {
			continue
		}
		if fullDayBlocked(blocks, dateStr) {
			continue
		}

		for h := startHour; h < endHour; h++ {
			if hourBlocked(blocks, dateStr, h) {
				continue
			}
			if taken[fmt.Sprintf("%s %02d", dateStr, h)] {
				continue
			}
			slots = append(slots, Slot{
				Date:  dateStr,
				Start: fmt.Sprintf("%02d:00", h),
				End:   fmt.Sprintf("%02d:00", h+1),
				Type:  SlotTypeAvailable,
			})
			if len(slots) >= cap {
				return slots
			}
		}
	}
	return slots
}

// isoWeekday maps time.Weekday to Monday=1..Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func parseHour(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

func blockCoversDate(b Block, date string) bool {
	return b.StartDate <= date && date <= b.EndDate
}

func fullDayBlocked(blocks []Block, date string) bool {
	for _, b := range blocks {
		if b.FullDay && blockCoversDate(b, date) {
			return true
		}
	}
	return false
}

func hourBlocked(blocks []Block, date string, hour int) bool {
	for _, b := range blocks {
		if b.FullDay || !blockCoversDate(b, date) {
			continue
		}
		start, okStart := parseHour(b.StartTime)
		end, okEnd := parseHour(b.EndTime)
		if !okStart || !okEnd {
			continue
		}
		if hour >= start && hour < end {
			return true
		}
	}
	return false
}
