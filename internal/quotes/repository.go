package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores emitted quotes so past offers stay auditable.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, id string) (*Quote, error)
	ListByLead(ctx context.Context, leadID string) ([]*Quote, error)
}

// InMemoryRepository is the map-backed implementation used by tests and
// local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	quotes map[string]*Quote
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{quotes: make(map[string]*Quote)}
}

func (r *InMemoryRepository) Create(_ context.Context, q *Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	cp := *q
	cp.Lines = append([]LineItem(nil), q.Lines...)
	r.quotes[q.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *InMemoryRepository) ListByLead(_ context.Context, leadID string) ([]*Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Quote, 0)
	for _, q := range r.quotes {
		if q.LeadID == leadID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

// PostgresRepository stores quotes in the relational database; line
// items travel as JSONB.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("quotes: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, q *Quote) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	lines, err := json.Marshal(q.Lines)
	if err != nil {
		return fmt.Errorf("quotes: encode lines: %w", err)
	}

	query := `
		INSERT INTO quotes (id, lead_id, client_name, client_email, lines, discount_pct, notes, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = r.pool.QueryRow(ctx, query,
		q.ID,
		q.LeadID,
		q.ClientName,
		q.ClientEmail,
		lines,
		q.DiscountPct,
		q.Notes,
		q.Currency,
	).Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("quotes: insert failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Quote, error) {
	query := `
		SELECT id, lead_id, client_name, client_email, lines, discount_pct, COALESCE(notes, ''), currency, created_at
		FROM quotes WHERE id = $1
	`
	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("quotes: get failed: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) ListByLead(ctx context.Context, leadID string) ([]*Quote, error) {
	query := `
		SELECT id, lead_id, client_name, client_email, lines, discount_pct, COALESCE(notes, ''), currency, created_at
		FROM quotes WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("quotes: list failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("quotes: scan failed: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*Quote, error) {
	q := &Quote{}
	var lines []byte
	if err := row.Scan(
		&q.ID,
		&q.LeadID,
		&q.ClientName,
		&q.ClientEmail,
		&lines,
		&q.DiscountPct,
		&q.Notes,
		&q.Currency,
		&q.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &q.Lines); err != nil {
		return nil, fmt.Errorf("quotes: decode lines: %w", err)
	}
	return q, nil
}
