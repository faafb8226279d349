package catalog

import (
	"context"
	"sync"
)

// StaticLoader serves a fixed catalog from memory. It backs development
// setups without a database and the package tests.
type StaticLoader struct {
	mu         sync.RWMutex
	services   []Service
	programs   []Program
	challenges []Challenge
}

func NewStaticLoader() *StaticLoader {
	return &StaticLoader{}
}

// SetServices replaces the served services.
func (l *StaticLoader) SetServices(services []Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append([]Service(nil), services...)
}

// SetPrograms replaces the served programs.
func (l *StaticLoader) SetPrograms(programs []Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs = append([]Program(nil), programs...)
}

// SetChallenges replaces the served challenges.
func (l *StaticLoader) SetChallenges(challenges []Challenge) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.challenges = append([]Challenge(nil), challenges...)
}

func (l *StaticLoader) ListServices(ctx context.Context) ([]Service, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Service(nil), l.services...), nil
}

func (l *StaticLoader) ListPrograms(ctx context.Context) ([]Program, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Program(nil), l.programs...), nil
}

func (l *StaticLoader) ListChallenges(ctx context.Context) ([]Challenge, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Challenge(nil), l.challenges...), nil
}
