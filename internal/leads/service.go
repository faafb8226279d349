package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// CompanyCreator creates a company record from lead fields. Implemented by
// the companies repository; declared here so conversion stays decoupled from
// that package.
type CompanyCreator interface {
	CreateFromLead(ctx context.Context, lead *CompanyLead) (companyID string, err error)
}

// outboxWriter persists events for downstream delivery.
type outboxWriter interface {
	Insert(ctx context.Context, eventType string, payload any) (uuid.UUID, error)
}

// Service implements lead lifecycle operations on top of the repository.
type Service struct {
	repo      Repository
	companies CompanyCreator
	outbox    outboxWriter
	logger    *logging.Logger
}

// NewService creates a lead service.
func NewService(repo Repository, companies CompanyCreator, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, companies: companies, logger: logger}
}

// WithOutbox attaches an event outbox and returns the service.
func (s *Service) WithOutbox(w outboxWriter) *Service {
	s.outbox = w
	return s
}

// Convert turns a lead into a company and marks the lead converted.
// Converted leads are terminal and reject further conversion.
func (s *Service) Convert(ctx context.Context, leadID string) (*CompanyLead, string, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, "", err
	}
	if lead.Status == StatusConverted {
		return nil, "", ErrLeadConverted
	}

	companyID, err := s.companies.CreateFromLead(ctx, lead)
	if err != nil {
		return nil, "", fmt.Errorf("leads: create company from lead: %w", err)
	}

	converted, err := s.repo.MarkConverted(ctx, leadID)
	if err != nil {
		return nil, "", err
	}

	if s.outbox != nil {
		_, err := s.outbox.Insert(ctx, events.TypeLeadConverted, events.LeadConvertedV1{
			EventID:     uuid.New().String(),
			LeadID:      leadID,
			CompanyID:   companyID,
			ConvertedAt: time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("failed to enqueue conversion event", "error", err, "lead_id", leadID)
		}
	}

	s.logger.Info("lead converted", "lead_id", leadID, "company_id", companyID)
	return converted, companyID, nil
}

// AdvanceToQuoted promotes a pending or contacted lead to quoted. Any other
// current status leaves the lead untouched. This is the side effect of
// emitting a quote for the lead.
func (s *Service) AdvanceToQuoted(ctx context.Context, leadID string) (*CompanyLead, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status != StatusPending && lead.Status != StatusContacted {
		return lead, nil
	}
	return s.repo.UpdateStatus(ctx, leadID, StatusQuoted)
}
