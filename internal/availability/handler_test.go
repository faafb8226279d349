package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func withProfessionalID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("professionalID", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListSlots(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.SetWorkingConfig(&WorkingConfig{
		ProfessionalID: "pro-1",
		StartTime:      "09:00",
		EndTime:        "11:00",
		WorkingDays:    []int{1, 2, 3, 4, 5},
	})
	repo.AddAppointment("pro-1", Appointment{Date: "2026-09-07", Time: "09:00"})

	h := NewHandler(repo, 0, 0, nil)
	h.now = func() time.Time { return anchor }

	req := withProfessionalID(httptest.NewRequest(http.MethodGet, "/professionals/pro-1/slots", nil), "pro-1")
	rr := httptest.NewRecorder()

	h.ListSlots(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Slots []Slot `json:"slots"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count == 0 || resp.Count > DefaultSlotCap {
		t.Fatalf("count = %d, want within (0, %d]", resp.Count, DefaultSlotCap)
	}
	if resp.Slots[0].Date != "2026-09-07" || resp.Slots[0].Start != "10:00" {
		t.Errorf("first slot = %+v, want the hour after the booked one", resp.Slots[0])
	}
}

func TestListSlots_NoConfigIs404(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), 14, 20, nil)

	req := withProfessionalID(httptest.NewRequest(http.MethodGet, "/professionals/nope/slots", nil), "nope")
	rr := httptest.NewRecorder()

	h.ListSlots(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
