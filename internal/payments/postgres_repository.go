package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores payments in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("payments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const paymentColumns = `id, conversation_id, professional_id, description, amount_cents, currency, provider, COALESCE(provider_ref, ''), url, status, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, p *Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}

	query := `
		INSERT INTO payments (id, conversation_id, professional_id, description, amount_cents, currency, provider, provider_ref, url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.ID,
		p.ConversationID,
		p.ProfessionalID,
		p.Description,
		p.AmountCents,
		p.Currency,
		p.Provider,
		p.ProviderRef,
		p.URL,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("payments: insert failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("payments: get failed: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) MarkSucceeded(ctx context.Context, id, providerRef string) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = $2, provider_ref = COALESCE(NULLIF($3, ''), provider_ref), updated_at = now()
		WHERE id = $1
		RETURNING ` + paymentColumns
	p, err := scanPayment(r.pool.QueryRow(ctx, query, id, StatusSucceeded, providerRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("payments: mark succeeded failed: %w", err)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID,
		&p.ConversationID,
		&p.ProfessionalID,
		&p.Description,
		&p.AmountCents,
		&p.Currency,
		&p.Provider,
		&p.ProviderRef,
		&p.URL,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
