package companies

import (
	"context"

	"github.com/bloomwell/wellness-platform/internal/leads"
)

// CreateFromLead creates a pending company seeded from a converted lead.
// Satisfies leads.CompanyCreator.
func (r *PostgresRepository) CreateFromLead(ctx context.Context, lead *leads.CompanyLead) (string, error) {
	company, err := r.Create(ctx, companyRequestFromLead(lead))
	if err != nil {
		return "", err
	}
	return company.ID, nil
}

// CreateFromLead mirrors the postgres behavior for the in-memory stub.
func (r *InMemoryRepository) CreateFromLead(ctx context.Context, lead *leads.CompanyLead) (string, error) {
	company, err := r.Create(ctx, companyRequestFromLead(lead))
	if err != nil {
		return "", err
	}
	return company.ID, nil
}

func companyRequestFromLead(lead *leads.CompanyLead) *CreateCompanyRequest {
	return &CreateCompanyRequest{
		Name:         lead.CompanyName,
		ContactName:  lead.ContactName,
		ContactEmail: lead.ContactEmail,
		ContactPhone: lead.ContactPhone,
		City:         lead.City,
		Status:       StatusPending,
	}
}
