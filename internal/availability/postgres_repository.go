package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository loads schedules, appointments, and blocks from the
// relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("availability: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetWorkingConfig(ctx context.Context, professionalID string) (*WorkingConfig, error) {
	cfg := &WorkingConfig{ProfessionalID: professionalID}
	query := `
		SELECT working_start_time, working_end_time, working_days
		FROM professional_schedules
		WHERE professional_id = $1
	`
	err := r.pool.QueryRow(ctx, query, professionalID).
		Scan(&cfg.StartTime, &cfg.EndTime, &cfg.WorkingDays)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("availability: get working config failed: %w", err)
	}
	return cfg, nil
}

func (r *PostgresRepository) ListAppointments(ctx context.Context, professionalID string, from, to time.Time) ([]Appointment, error) {
	query := `
		SELECT appointment_date, appointment_time
		FROM appointments
		WHERE professional_id = $1
		  AND appointment_date BETWEEN $2 AND $3
		  AND status <> 'cancelled'
		ORDER BY appointment_date, appointment_time
	`
	rows, err := r.pool.Query(ctx, query, professionalID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("availability: list appointments failed: %w", err)
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.Date, &a.Time); err != nil {
			return nil, fmt.Errorf("availability: scan appointment failed: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListBlocks(ctx context.Context, professionalID string, from, to time.Time) ([]Block, error) {
	query := `
		SELECT start_date, end_date, full_day, COALESCE(start_time, ''), COALESCE(end_time, '')
		FROM availability_blocks
		WHERE professional_id = $1
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`
	rows, err := r.pool.Query(ctx, query, professionalID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("availability: list blocks failed: %w", err)
	}
	defer rows.Close()

	out := make([]Block, 0)
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.StartDate, &b.EndDate, &b.FullDay, &b.StartTime, &b.EndTime); err != nil {
			return nil, fmt.Errorf("availability: scan block failed: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
