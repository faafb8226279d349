package availability

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrConfigNotFound is returned when a professional has no working schedule.
var ErrConfigNotFound = errors.New("availability: working config not found")

// Repository loads the inputs of the slot generator for one professional.
type Repository interface {
	GetWorkingConfig(ctx context.Context, professionalID string) (*WorkingConfig, error)
	ListAppointments(ctx context.Context, professionalID string, from, to time.Time) ([]Appointment, error)
	ListBlocks(ctx context.Context, professionalID string, from, to time.Time) ([]Block, error)
}

// InMemoryRepository is the map-backed implementation used by tests and
// local development.
type InMemoryRepository struct {
	mu           sync.RWMutex
	configs      map[string]*WorkingConfig
	appointments map[string][]Appointment
	blocks       map[string][]Block
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		configs:      make(map[string]*WorkingConfig),
		appointments: make(map[string][]Appointment),
		blocks:       make(map[string][]Block),
	}
}

// SetWorkingConfig stores a professional's schedule.
func (r *InMemoryRepository) SetWorkingConfig(cfg *WorkingConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.ProfessionalID] = cfg
}

// AddAppointment records a booked hour.
func (r *InMemoryRepository) AddAppointment(professionalID string, a Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[professionalID] = append(r.appointments[professionalID], a)
}

// AddBlock records a blocked interval.
func (r *InMemoryRepository) AddBlock(professionalID string, b Block) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[professionalID] = append(r.blocks[professionalID], b)
}

func (r *InMemoryRepository) GetWorkingConfig(_ context.Context, professionalID string) (*WorkingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[professionalID]
	if !ok {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}

func (r *InMemoryRepository) ListAppointments(_ context.Context, professionalID string, from, to time.Time) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Appointment, 0)
	for _, a := range r.appointments[professionalID] {
		if inDateRange(a.Date, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListBlocks(_ context.Context, professionalID string, from, to time.Time) ([]Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Block, 0)
	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")
	for _, b := range r.blocks[professionalID] {
		if b.StartDate <= toStr && b.EndDate >= fromStr {
			out = append(out, b)
		}
	}
	return out, nil
}

func inDateRange(date string, from, to time.Time) bool {
	return date >= from.Format("2006-01-02") && date <= to.Format("2006-01-02")
}
