package availability

import (
	"reflect"
	"testing"
	"time"
)

// Monday 2026-09-07 as the generation anchor keeps weekday math readable.
var anchor = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func weekdayOf(date string) int {
	t, _ := time.Parse("2006-01-02", date)
	return isoWeekday(t)
}

func TestGenerateSlots_RespectsWorkingDays(t *testing.T) {
	cfg := WorkingConfig{StartTime: "09:00", EndTime: "12:00", WorkingDays: []int{1, 3}} // Mon, Wed

	slots := GenerateSlots(cfg, nil, nil, anchor, 14, 100)

	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	for _, s := range slots {
		wd := weekdayOf(s.Date)
		if wd != 1 && wd != 3 {
			t.Errorf("slot %v on weekday %d, outside working days", s, wd)
		}
	}
	// 4 Mondays+Wednesdays in 14 days from a Monday, 3 hours each.
	if len(slots) != 12 {
		t.Errorf("got %d slots, want 12", len(slots))
	}
}

func TestGenerateSlots_CapAndOrdering(t *testing.T) {
	cfg := WorkingConfig{StartTime: "08:00", EndTime: "18:00", WorkingDays: []int{1, 2, 3, 4, 5}}

	slots := GenerateSlots(cfg, nil, nil, anchor, 14, 20)

	if len(slots) != 20 {
		t.Fatalf("got %d slots, want cap of 20", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if cur.Date < prev.Date || (cur.Date == prev.Date && cur.Start <= prev.Start) {
			t.Errorf("slots out of order: %v before %v", prev, cur)
		}
	}
}

func TestGenerateSlots_SkipsAppointments(t *testing.T) {
	cfg := WorkingConfig{StartTime: "09:00", EndTime: "12:00", WorkingDays: []int{1}}
	appts := []Appointment{
		{Date: "2026-09-07", Time: "10:00"},
		{Date: "2026-09-14", Time: "09:00"},
	}

	slots := GenerateSlots(cfg, appts, nil, anchor, 14, 100)

	for _, s := range slots {
		for _, a := range appts {
			if s.Date == a.Date && s.Start == a.Time {
				t.Errorf("slot %v collides with appointment", s)
			}
		}
	}
	// Two Mondays, 3 hours each, minus the 2 booked hours.
	if len(slots) != 4 {
		t.Errorf("got %d slots, want 4", len(slots))
	}
}

func TestGenerateSlots_FullDayBlock(t *testing.T) {
	cfg := WorkingConfig{StartTime: "09:00", EndTime: "12:00", WorkingDays: []int{1}}
	blocks := []Block{{StartDate: "2026-09-07", EndDate: "2026-09-07", FullDay: true}}

	slots := GenerateSlots(cfg, nil, blocks, anchor, 14, 100)

	for _, s := range slots {
		if s.Date == "2026-09-07" {
			t.Errorf("slot %v emitted on fully blocked day", s)
		}
	}
}

func TestGenerateSlots_TimeRangeBlock(t *testing.T) {
	cfg := WorkingConfig{StartTime: "09:00", EndTime: "13:00", WorkingDays: []int{1}}
	blocks := []Block{{
		StartDate: "2026-09-07", EndDate: "2026-09-14",
		StartTime: "10:00", EndTime: "12:00",
	}}

	slots := GenerateSlots(cfg, nil, blocks, anchor, 14, 100)

	for _, s := range slots {
		if s.Start == "10:00" || s.Start == "11:00" {
			t.Errorf("slot %v falls inside blocked range", s)
		}
	}
	// Two Mondays, hours 09 and 12 remain on each.
	if len(slots) != 4 {
		t.Errorf("got %d slots, want 4", len(slots))
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	cfg := WorkingConfig{StartTime: "09:00", EndTime: "17:00", WorkingDays: []int{2, 4, 6}}
	appts := []Appointment{{Date: "2026-09-08", Time: "09:00"}}
	blocks := []Block{{StartDate: "2026-09-10", EndDate: "2026-09-10", FullDay: true}}

	a := GenerateSlots(cfg, appts, blocks, anchor, 14, 20)
	b := GenerateSlots(cfg, appts, blocks, anchor, 14, 20)

	if !reflect.DeepEqual(a, b) {
		t.Error("same inputs produced different slot lists")
	}
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	if got := GenerateSlots(WorkingConfig{StartTime: "12:00", EndTime: "09:00", WorkingDays: []int{1}}, nil, nil, anchor, 14, 20); len(got) != 0 {
		t.Errorf("end before start should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots(WorkingConfig{StartTime: "bad", EndTime: "17:00", WorkingDays: []int{1}}, nil, nil, anchor, 14, 20); len(got) != 0 {
		t.Errorf("unparseable time should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots(WorkingConfig{StartTime: "09:00", EndTime: "17:00"}, nil, nil, anchor, 14, 20); len(got) != 0 {
		t.Errorf("empty working days should yield no slots, got %d", len(got))
	}
}

func TestIsoWeekday(t *testing.T) {
	// anchor is a Monday; the following Sunday must map to 7.
	if got := isoWeekday(anchor); got != 1 {
		t.Errorf("Monday = %d, want 1", got)
	}
	if got := isoWeekday(anchor.AddDate(0, 0, 6)); got != 7 {
		t.Errorf("Sunday = %d, want 7", got)
	}
}
