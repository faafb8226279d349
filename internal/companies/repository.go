package companies

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bloomwell/wellness-platform/internal/leads"
)

// Repository defines the interface for company storage
type Repository interface {
	Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
	Update(ctx context.Context, id string, req *UpdateCompanyRequest) (*Company, error)
	Delete(ctx context.Context, id string) error
	CreateFromLead(ctx context.Context, lead *leads.CompanyLead) (string, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	companies map[string]*Company
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		companies: make(map[string]*Company),
	}
}

// Create creates a new company in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	now := time.Now().UTC()
	company := &Company{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Industry:     req.Industry,
		Size:         req.Size,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.mu.Lock()
	r.companies[company.ID] = company
	r.mu.Unlock()

	return company, nil
}

// GetByID retrieves a company by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// List returns all companies ordered by creation time descending.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies the provided fields to a company.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	company, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	updated := *company
	applyUpdate(&updated, req)
	updated.UpdatedAt = time.Now().UTC()
	r.companies[id] = &updated
	return &updated, nil
}

// Delete removes a company.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(r.companies, id)
	return nil
}

func applyUpdate(c *Company, req *UpdateCompanyRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Industry != nil {
		c.Industry = *req.Industry
	}
	if req.Size != nil {
		c.Size = *req.Size
	}
	if req.ContactName != nil {
		c.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		c.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		c.ContactPhone = *req.ContactPhone
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
}
