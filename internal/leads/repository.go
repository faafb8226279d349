package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage.
// Converted leads are terminal: UpdateStatus rejects them, and the converted
// status itself is only reachable through MarkConverted.
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*CompanyLead, error)
	GetByID(ctx context.Context, id string) (*CompanyLead, error)
	List(ctx context.Context) ([]*CompanyLead, error)
	UpdateStatus(ctx context.Context, id string, status string) (*CompanyLead, error)
	MarkConverted(ctx context.Context, id string) (*CompanyLead, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*CompanyLead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*CompanyLead),
	}
}

// Create creates a new lead in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest) (*CompanyLead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lead := &CompanyLead{
		ID:           uuid.New().String(),
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		ServiceIDs:   append([]string(nil), req.ServiceIDs...),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*CompanyLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// List returns all leads, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*CompanyLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*CompanyLead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus sets a non-terminal status on a lead.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status string) (*CompanyLead, error) {
	switch status {
	case StatusPending, StatusContacted, StatusQuoted:
	default:
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	if lead.Status == StatusConverted {
		return nil, ErrLeadConverted
	}
	updated := *lead
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()
	r.leads[id] = &updated
	return &updated, nil
}

// MarkConverted moves a lead into its terminal status.
func (r *InMemoryRepository) MarkConverted(ctx context.Context, id string) (*CompanyLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	if lead.Status == StatusConverted {
		return nil, ErrLeadConverted
	}
	updated := *lead
	updated.Status = StatusConverted
	updated.UpdatedAt = time.Now().UTC()
	r.leads[id] = &updated
	return &updated, nil
}
