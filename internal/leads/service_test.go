package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

type stubCompanyCreator struct {
	companyID string
}

func (s *stubCompanyCreator) CreateFromLead(_ context.Context, _ *CompanyLead) (string, error) {
	return s.companyID, nil
}

type memOutbox struct {
	types    []string
	payloads []any
}

func (m *memOutbox) Insert(_ context.Context, eventType string, payload any) (uuid.UUID, error) {
	m.types = append(m.types, eventType)
	m.payloads = append(m.payloads, payload)
	return uuid.New(), nil
}

func TestConvert_EmitsConversionEvent(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead, err := repo.Create(ctx, &CreateLeadRequest{
		CompanyName:  "Globex",
		ContactEmail: "ana@globex.mx",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outbox := &memOutbox{}
	svc := NewService(repo, &stubCompanyCreator{companyID: "co-1"}, logging.Default()).
		WithOutbox(outbox)

	if _, _, err := svc.Convert(ctx, lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outbox.types) != 1 || outbox.types[0] != events.TypeLeadConverted {
		t.Fatalf("outbox types = %v, want [%s]", outbox.types, events.TypeLeadConverted)
	}
	evt, ok := outbox.payloads[0].(events.LeadConvertedV1)
	if !ok {
		t.Fatalf("payload = %T, want LeadConvertedV1", outbox.payloads[0])
	}
	if evt.LeadID != lead.ID || evt.CompanyID != "co-1" {
		t.Errorf("event = %+v", evt)
	}
	if evt.EventID == "" || evt.ConvertedAt.IsZero() {
		t.Errorf("event missing id or timestamp: %+v", evt)
	}
}

func TestConvert_NoOutboxIsFine(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead, err := repo.Create(ctx, &CreateLeadRequest{
		CompanyName:  "Initech",
		ContactEmail: "b@initech.mx",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewService(repo, &stubCompanyCreator{companyID: "co-2"}, logging.Default())
	converted, companyID, err := svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if converted.Status != StatusConverted || companyID != "co-2" {
		t.Errorf("converted = %+v, company = %s", converted, companyID)
	}
}
