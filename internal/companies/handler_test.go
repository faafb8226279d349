package companies

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bloomwell/wellness-platform/internal/leads"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

func newTestHandler() (*Handler, *InMemoryRepository, *leads.InMemoryRepository) {
	repo := NewInMemoryRepository()
	leadRepo := leads.NewInMemoryRepository()
	return NewHandler(repo, leadRepo, logging.Default()), repo, leadRepo
}

func TestCreateCompany_Success(t *testing.T) {
	handler, _, _ := newTestHandler()

	reqBody := CreateCompanyRequest{
		Name:         "Acme Wellness",
		Industry:     "tech",
		ContactEmail: "rh@acme.mx",
		City:         "CDMX",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/admin/companies", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateCompany(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var company Company
	if err := json.NewDecoder(w.Body).Decode(&company); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if company.Name != reqBody.Name {
		t.Errorf("expected name %s, got %s", reqBody.Name, company.Name)
	}
	if company.Status != StatusPending {
		t.Errorf("expected default status pending, got %s", company.Status)
	}
}

func TestCreateCompany_MissingName(t *testing.T) {
	handler, _, _ := newTestHandler()

	body, _ := json.Marshal(CreateCompanyRequest{Industry: "tech"})
	req := httptest.NewRequest(http.MethodPost, "/admin/companies", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateCompany(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateCompany_InvalidJSON(t *testing.T) {
	handler, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/admin/companies", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.CreateCompany(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListCompanies_FilterQuery(t *testing.T) {
	handler, repo, _ := newTestHandler()
	ctx := context.Background()

	repo.Create(ctx, &CreateCompanyRequest{Name: "Acme", Industry: "tech", Status: StatusActive})
	repo.Create(ctx, &CreateCompanyRequest{Name: "Globex", Industry: "retail", Status: StatusActive})

	req := httptest.NewRequest(http.MethodGet, "/admin/companies?industry=tech", nil)
	w := httptest.NewRecorder()

	handler.ListCompanies(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ListCompaniesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Companies[0].Name != "Acme" {
		t.Errorf("expected only Acme, got %+v", resp)
	}
}

func TestGetCompany_NotFound(t *testing.T) {
	handler, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/companies/nope", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("companyID", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.GetCompany(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetStats_CountsLeadsAndCompanies(t *testing.T) {
	handler, repo, leadRepo := newTestHandler()
	ctx := context.Background()

	repo.Create(ctx, &CreateCompanyRequest{Name: "Acme", Status: StatusActive})
	lead, _ := leadRepo.Create(ctx, &leads.CreateLeadRequest{CompanyName: "Globex", ContactEmail: "x@globex.mx"})
	leadRepo.UpdateStatus(ctx, lead.ID, leads.StatusContacted)

	req := httptest.NewRequest(http.MethodGet, "/admin/companies/stats", nil)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var stats Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("expected total 2, got %d", stats.Total)
	}
	if stats.Contacted != 1 {
		t.Errorf("expected contacted 1, got %d", stats.Contacted)
	}
}

func TestConvertLead_CreatesCompanyAndTerminates(t *testing.T) {
	_, repo, leadRepo := newTestHandler()
	ctx := context.Background()

	lead, err := leadRepo.Create(ctx, &leads.CreateLeadRequest{
		CompanyName:  "Globex",
		ContactName:  "Ana",
		ContactEmail: "ana@globex.mx",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := leads.NewService(leadRepo, repo, logging.Default())
	converted, companyID, err := svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if converted.Status != leads.StatusConverted {
		t.Errorf("expected converted status, got %s", converted.Status)
	}

	company, err := repo.GetByID(ctx, companyID)
	if err != nil {
		t.Fatalf("company not created: %v", err)
	}
	if company.Name != "Globex" || company.Status != StatusPending {
		t.Errorf("unexpected company from conversion: %+v", company)
	}

	// terminal: a second conversion is rejected
	if _, _, err := svc.Convert(ctx, lead.ID); err != leads.ErrLeadConverted {
		t.Errorf("expected ErrLeadConverted, got %v", err)
	}
}
