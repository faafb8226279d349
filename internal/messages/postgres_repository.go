package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores conversations and messages in the relational
// database. The metadata bag lives in a JSONB column.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("messages: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const messageColumns = `id, conversation_id, sender_id, sender_type, content, metadata, quote_payment_status, is_read, read_at, created_at`

func (r *PostgresRepository) CreateConversation(ctx context.Context, patientID, professionalID string) (*Conversation, error) {
	conv := &Conversation{}
	query := `
		INSERT INTO conversations (id, patient_id, professional_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (patient_id, professional_id) DO UPDATE SET patient_id = EXCLUDED.patient_id
		RETURNING id, patient_id, professional_id, created_at
	`
	err := r.pool.QueryRow(ctx, query, uuid.New(), patientID, professionalID).
		Scan(&conv.ID, &conv.PatientID, &conv.ProfessionalID, &conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("messages: create conversation failed: %w", err)
	}
	return conv, nil
}

func (r *PostgresRepository) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	conv := &Conversation{}
	query := `SELECT id, patient_id, professional_id, created_at FROM conversations WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&conv.ID, &conv.PatientID, &conv.ProfessionalID, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("messages: get conversation failed: %w", err)
	}
	return conv, nil
}

func (r *PostgresRepository) ListConversations(ctx context.Context, participantID string) ([]*Conversation, error) {
	query := `
		SELECT id, patient_id, professional_id, created_at
		FROM conversations
		WHERE patient_id = $1 OR professional_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("messages: list conversations failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Conversation, 0)
	for rows.Next() {
		conv := &Conversation{}
		if err := rows.Scan(&conv.ID, &conv.PatientID, &conv.ProfessionalID, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("messages: scan conversation failed: %w", err)
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Append(ctx context.Context, req *AppendMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	meta, err := json.Marshal(req.Metadata)
	if err != nil {
		return nil, fmt.Errorf("messages: encode metadata failed: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, sender_type, content, metadata, quote_payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING created_at
	`
	var createdAt time.Time
	err = r.pool.QueryRow(ctx, query,
		id,
		req.ConversationID,
		req.SenderID,
		req.SenderType,
		req.Content,
		meta,
		req.QuotePaymentStatus,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("messages: insert message failed: %w", err)
	}

	return &Message{
		ID:                 id.String(),
		ConversationID:     req.ConversationID,
		SenderID:           req.SenderID,
		SenderType:         req.SenderType,
		Content:            req.Content,
		Metadata:           req.Metadata,
		QuotePaymentStatus: req.QuotePaymentStatus,
		CreatedAt:          createdAt,
	}, nil
}

func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID string, after time.Time) ([]*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1`
	args := []any{conversationID}
	if !after.IsZero() {
		query += ` AND created_at > $2`
		args = append(args, after)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("messages: list messages failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = now()
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("messages: mark read failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) UpdateQuotePaymentStatus(ctx context.Context, quotePaymentID, status string) (*Message, error) {
	query := `
		UPDATE messages
		SET quote_payment_status = $2
		WHERE metadata->>'quote_payment_id' = $1
		RETURNING ` + messageColumns
	row := r.pool.QueryRow(ctx, query, quotePaymentID, status)
	msg, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("messages: update payment status failed: %w", err)
	}
	return msg, nil
}

func scanMessage(row pgx.Row) (*Message, error) {
	msg := &Message{}
	var meta []byte
	var status *string
	if err := row.Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.SenderID,
		&msg.SenderType,
		&msg.Content,
		&meta,
		&status,
		&msg.IsRead,
		&msg.ReadAt,
		&msg.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("messages: scan message failed: %w", err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &msg.Metadata); err != nil {
			return nil, fmt.Errorf("messages: decode metadata failed: %w", err)
		}
	}
	if status != nil {
		msg.QuotePaymentStatus = *status
	}
	return msg, nil
}
