package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads catalog rows from postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &Repository{pool: pool}
}

// ListServices returns all active services.
func (r *Repository) ListServices(ctx context.Context) ([]Service, error) {
	query := `
		SELECT id, professional_id, name, description, price, duration_minutes, active
		FROM holistic_services
		WHERE active
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list services: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.ProfessionalID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.Active); err != nil {
			return nil, fmt.Errorf("catalog: scan service: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListPrograms returns all active digital programs.
func (r *Repository) ListPrograms(ctx context.Context) ([]Program, error) {
	query := `
		SELECT id, professional_id, title, description, price, active
		FROM digital_products
		WHERE active
		ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list programs: %w", err)
	}
	defer rows.Close()

	var out []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.ProfessionalID, &p.Title, &p.Description, &p.Price, &p.Active); err != nil {
			return nil, fmt.Errorf("catalog: scan program: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListChallenges returns all active challenges.
func (r *Repository) ListChallenges(ctx context.Context) ([]Challenge, error) {
	query := `
		SELECT id, professional_id, title, description, duration_days, active
		FROM challenges
		WHERE active
		ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list challenges: %w", err)
	}
	defer rows.Close()

	var out []Challenge
	for rows.Next() {
		var c Challenge
		if err := rows.Scan(&c.ID, &c.ProfessionalID, &c.Title, &c.Description, &c.DurationDays, &c.Active); err != nil {
			return nil, fmt.Errorf("catalog: scan challenge: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
