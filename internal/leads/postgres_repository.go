package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const leadColumns = `id, company_name, contact_name, contact_email, contact_phone, city, service_ids, status, created_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*CompanyLead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO company_leads (id, company_name, contact_name, contact_email, contact_phone, city, service_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.CompanyName,
		req.ContactName,
		req.ContactEmail,
		req.ContactPhone,
		req.City,
		req.ServiceIDs,
		StatusPending,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &CompanyLead{
		ID:           id.String(),
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		ServiceIDs:   append([]string(nil), req.ServiceIDs...),
		Status:       StatusPending,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*CompanyLead, error) {
	query := `SELECT ` + leadColumns + ` FROM company_leads WHERE id = $1`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns all leads, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*CompanyLead, error) {
	query := `SELECT ` + leadColumns + ` FROM company_leads ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	var out []*CompanyLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// UpdateStatus sets a non-terminal status; converted rows are never touched.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) (*CompanyLead, error) {
	switch status {
	case StatusPending, StatusContacted, StatusQuoted:
	default:
		return nil, ErrInvalidStatus
	}

	query := `
		UPDATE company_leads
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> 'converted'
		RETURNING ` + leadColumns
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, fmt.Errorf("leads: update status failed: %w", err)
	}
	return lead, nil
}

// MarkConverted moves a lead into its terminal status.
func (r *PostgresRepository) MarkConverted(ctx context.Context, id string) (*CompanyLead, error) {
	query := `
		UPDATE company_leads
		SET status = 'converted', updated_at = now()
		WHERE id = $1 AND status <> 'converted'
		RETURNING ` + leadColumns
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, fmt.Errorf("leads: mark converted failed: %w", err)
	}
	return lead, nil
}

// classifyMiss distinguishes a missing row from a terminal one.
func (r *PostgresRepository) classifyMiss(ctx context.Context, id string) error {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM company_leads WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLeadNotFound
	}
	if err != nil {
		return fmt.Errorf("leads: status lookup failed: %w", err)
	}
	if status == StatusConverted {
		return ErrLeadConverted
	}
	return ErrLeadNotFound
}

func scanLead(row pgx.Row) (*CompanyLead, error) {
	var l CompanyLead
	if err := row.Scan(
		&l.ID,
		&l.CompanyName,
		&l.ContactName,
		&l.ContactEmail,
		&l.ContactPhone,
		&l.City,
		&l.ServiceIDs,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}
