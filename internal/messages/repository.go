package messages

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository stores conversations and their messages. Messages are
// append-only: the single mutation is flipping a quote message's payment
// status in place when the provider confirms payment.
type Repository interface {
	CreateConversation(ctx context.Context, patientID, professionalID string) (*Conversation, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	ListConversations(ctx context.Context, participantID string) ([]*Conversation, error)
	Append(ctx context.Context, req *AppendMessageRequest) (*Message, error)
	ListMessages(ctx context.Context, conversationID string, after time.Time) ([]*Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string) (int64, error)
	UpdateQuotePaymentStatus(ctx context.Context, quotePaymentID, status string) (*Message, error)
}

// InMemoryRepository is the map-backed implementation used by tests and
// local development.
type InMemoryRepository struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	messages      map[string][]*Message // conversationID -> ordered messages
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string][]*Message),
	}
}

func (r *InMemoryRepository) CreateConversation(_ context.Context, patientID, professionalID string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Reuse an existing pair conversation rather than splitting history.
	for _, c := range r.conversations {
		if c.PatientID == patientID && c.ProfessionalID == professionalID {
			return c, nil
		}
	}

	conv := &Conversation{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		ProfessionalID: professionalID,
		CreatedAt:      time.Now().UTC(),
	}
	r.conversations[conv.ID] = conv
	return conv, nil
}

func (r *InMemoryRepository) GetConversation(_ context.Context, id string) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (r *InMemoryRepository) ListConversations(_ context.Context, participantID string) ([]*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Conversation, 0)
	for _, c := range r.conversations {
		if c.PatientID == participantID || c.ProfessionalID == participantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Append(_ context.Context, req *AppendMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[req.ConversationID]; !ok {
		return nil, ErrConversationNotFound
	}

	msg := &Message{
		ID:                 uuid.New().String(),
		ConversationID:     req.ConversationID,
		SenderID:           req.SenderID,
		SenderType:         req.SenderType,
		Content:            req.Content,
		Metadata:           req.Metadata,
		QuotePaymentStatus: req.QuotePaymentStatus,
		CreatedAt:          time.Now().UTC(),
	}
	r.messages[req.ConversationID] = append(r.messages[req.ConversationID], msg)
	return msg, nil
}

func (r *InMemoryRepository) ListMessages(_ context.Context, conversationID string, after time.Time) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.conversations[conversationID]; !ok {
		return nil, ErrConversationNotFound
	}

	all := r.messages[conversationID]
	out := make([]*Message, 0, len(all))
	for _, m := range all {
		if !after.IsZero() && !m.CreatedAt.After(after) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *InMemoryRepository) MarkRead(_ context.Context, conversationID, readerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[conversationID]; !ok {
		return 0, ErrConversationNotFound
	}

	now := time.Now().UTC()
	var n int64
	for _, m := range r.messages[conversationID] {
		if m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) UpdateQuotePaymentStatus(_ context.Context, quotePaymentID, status string) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msgs := range r.messages {
		for _, m := range msgs {
			if m.Metadata.QuotePaymentID == quotePaymentID {
				m.QuotePaymentStatus = status
				return m, nil
			}
		}
	}
	return nil, ErrMessageNotFound
}
