// Package catalog exposes the marketplace's shareable offerings: holistic
// services, digital programs and challenges. Reads go through a redis
// snapshot cache so chat rendering and quote building see a consistent view.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Service is a bookable offering from a professional.
type Service struct {
	ID              string          `json:"id"`
	ProfessionalID  string          `json:"professional_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
}

// Program is a digital product (course, plan) sold by a professional.
type Program struct {
	ID             string          `json:"id"`
	ProfessionalID string          `json:"professional_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Active         bool            `json:"active"`
}

// Challenge is a time-boxed group activity a professional runs.
type Challenge struct {
	ID             string `json:"id"`
	ProfessionalID string `json:"professional_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DurationDays   int    `json:"duration_days"`
	Active         bool   `json:"active"`
}

// Snapshot is an immutable view of the catalog used by pure functions
// (message rendering, quote building) instead of ambient lookups.
type Snapshot struct {
	Services   map[string]Service   `json:"services"`
	Programs   map[string]Program   `json:"programs"`
	Challenges map[string]Challenge `json:"challenges"`
}

// NewSnapshot indexes the given collections by id.
func NewSnapshot(services []Service, programs []Program, challenges []Challenge) *Snapshot {
	s := &Snapshot{
		Services:   make(map[string]Service, len(services)),
		Programs:   make(map[string]Program, len(programs)),
		Challenges: make(map[string]Challenge, len(challenges)),
	}
	for _, svc := range services {
		s.Services[svc.ID] = svc
	}
	for _, p := range programs {
		s.Programs[p.ID] = p
	}
	for _, c := range challenges {
		s.Challenges[c.ID] = c
	}
	return s
}

// ServiceByID looks up a service in the snapshot.
func (s *Snapshot) ServiceByID(id string) (Service, bool) {
	if s == nil {
		return Service{}, false
	}
	svc, ok := s.Services[id]
	return svc, ok
}

// ProgramByID looks up a program in the snapshot.
func (s *Snapshot) ProgramByID(id string) (Program, bool) {
	if s == nil {
		return Program{}, false
	}
	p, ok := s.Programs[id]
	return p, ok
}

// ChallengeByID looks up a challenge in the snapshot.
func (s *Snapshot) ChallengeByID(id string) (Challenge, bool) {
	if s == nil {
		return Challenge{}, false
	}
	c, ok := s.Challenges[id]
	return c, ok
}
