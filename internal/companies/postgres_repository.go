package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores companies in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("companies: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const companyColumns = `id, name, description, industry, size, contact_name, contact_email, contact_phone, city, status, created_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	id := uuid.New()
	query := `
		INSERT INTO companies (id, name, description, industry, size, contact_name, contact_email, contact_phone, city, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Description,
		req.Industry,
		req.Size,
		req.ContactName,
		req.ContactEmail,
		req.ContactPhone,
		req.City,
		status,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("companies: insert failed: %w", err)
	}

	return &Company{
		ID:           id.String(),
		Name:         req.Name,
		Description:  req.Description,
		Industry:     req.Industry,
		Size:         req.Size,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// GetByID fetches a single company.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companies: select failed: %w", err)
	}
	return company, nil
}

// List returns all companies, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("companies: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("companies: scan failed: %w", err)
		}
		out = append(out, company)
	}
	return out, rows.Err()
}

// Update applies the provided fields and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	idx := 2
	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Industry != nil {
		add("industry", *req.Industry)
	}
	if req.Size != nil {
		add("size", *req.Size)
	}
	if req.ContactName != nil {
		add("contact_name", *req.ContactName)
	}
	if req.ContactEmail != nil {
		add("contact_email", *req.ContactEmail)
	}
	if req.ContactPhone != nil {
		add("contact_phone", *req.ContactPhone)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	query := `UPDATE companies SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + companyColumns
	row := r.pool.QueryRow(ctx, query, args...)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companies: update failed: %w", err)
	}
	return company, nil
}

// Delete removes a company row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("companies: delete failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Industry,
		&c.Size,
		&c.ContactName,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.City,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
