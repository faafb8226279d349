package payments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository stores payment records.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	MarkSucceeded(ctx context.Context, id, providerRef string) (*Payment, error)
}

// InMemoryRepository is the map-backed implementation used by tests and
// local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]*Payment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{payments: make(map[string]*Payment)}
}

func (r *InMemoryRepository) Create(_ context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryRepository) MarkSucceeded(_ context.Context, id, providerRef string) (*Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	p.Status = StatusSucceeded
	if providerRef != "" {
		p.ProviderRef = providerRef
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}
