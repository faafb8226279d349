package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

func withLeadID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("leadID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateLead_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, logging.Default())

	reqBody := CreateLeadRequest{
		CompanyName:  "Globex",
		ContactName:  "Ana Torres",
		ContactEmail: "ana@globex.mx",
		ServiceIDs:   []string{"svc-1", "svc-2"},
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var lead CompanyLead
	if err := json.NewDecoder(w.Body).Decode(&lead); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if lead.Status != StatusPending {
		t.Errorf("expected status pending, got %s", lead.Status)
	}
	if len(lead.ServiceIDs) != 2 {
		t.Errorf("expected 2 service ids, got %d", len(lead.ServiceIDs))
	}
}

func TestCreateLead_MissingContact(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, logging.Default())

	body, _ := json.Marshal(CreateLeadRequest{CompanyName: "Globex"})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUpdateStatus_DirectSelection(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, logging.Default())
	ctx := context.Background()

	lead, _ := repo.Create(ctx, &CreateLeadRequest{CompanyName: "Globex", ContactEmail: "x@globex.mx"})

	body, _ := json.Marshal(updateStatusRequest{Status: StatusContacted})
	req := withLeadID(httptest.NewRequest(http.MethodPatch, "/admin/leads/x/status", bytes.NewReader(body)), lead.ID)
	w := httptest.NewRecorder()

	handler.UpdateStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var updated CompanyLead
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Status != StatusContacted {
		t.Errorf("expected contacted, got %s", updated.Status)
	}
}

func TestUpdateStatus_RejectsConvertedTarget(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, logging.Default())
	ctx := context.Background()

	lead, _ := repo.Create(ctx, &CreateLeadRequest{CompanyName: "Globex", ContactEmail: "x@globex.mx"})

	body, _ := json.Marshal(updateStatusRequest{Status: StatusConverted})
	req := withLeadID(httptest.NewRequest(http.MethodPatch, "/admin/leads/x/status", bytes.NewReader(body)), lead.ID)
	w := httptest.NewRecorder()

	handler.UpdateStatus(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUpdateStatus_ConvertedLeadIsTerminal(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead, _ := repo.Create(ctx, &CreateLeadRequest{CompanyName: "Globex", ContactEmail: "x@globex.mx"})
	if _, err := repo.MarkConverted(ctx, lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.UpdateStatus(ctx, lead.ID, StatusContacted); err != ErrLeadConverted {
		t.Errorf("expected ErrLeadConverted, got %v", err)
	}
	if _, err := repo.MarkConverted(ctx, lead.ID); err != ErrLeadConverted {
		t.Errorf("expected ErrLeadConverted on double convert, got %v", err)
	}
}

func TestAdvanceToQuoted(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil, logging.Default())
	ctx := context.Background()

	// pending advances
	lead, _ := repo.Create(ctx, &CreateLeadRequest{CompanyName: "A", ContactEmail: "a@a.mx"})
	got, err := svc.AdvanceToQuoted(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusQuoted {
		t.Errorf("expected quoted, got %s", got.Status)
	}

	// contacted advances
	lead2, _ := repo.Create(ctx, &CreateLeadRequest{CompanyName: "B", ContactEmail: "b@b.mx"})
	repo.UpdateStatus(ctx, lead2.ID, StatusContacted)
	got, err = svc.AdvanceToQuoted(ctx, lead2.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusQuoted {
		t.Errorf("expected quoted, got %s", got.Status)
	}

	// quoted stays quoted (no error, no change)
	got, err = svc.AdvanceToQuoted(ctx, lead2.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusQuoted {
		t.Errorf("expected quoted unchanged, got %s", got.Status)
	}
}

func TestListLeads(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, logging.Default())
	ctx := context.Background()

	repo.Create(ctx, &CreateLeadRequest{CompanyName: "A", ContactEmail: "a@a.mx"})
	repo.Create(ctx, &CreateLeadRequest{CompanyName: "B", ContactEmail: "b@b.mx"})

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	w := httptest.NewRecorder()

	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListLeadsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Count != 2 {
		t.Errorf("expected 2 leads, got %d", resp.Count)
	}
}
