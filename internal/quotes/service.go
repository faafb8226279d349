package quotes

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"

	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/internal/leads"
	"github.com/bloomwell/wellness-platform/internal/messages"
	"github.com/bloomwell/wellness-platform/internal/notify"
	"github.com/bloomwell/wellness-platform/internal/payments"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// outboxWriter persists events for downstream delivery.
type outboxWriter interface {
	Insert(ctx context.Context, eventType string, payload any) (uuid.UUID, error)
}

// MetricsRecorder counts emitted quotes by delivery channel.
type MetricsRecorder interface {
	QuoteEmitted(channel string)
}

// Service runs the quote emission flows. Every emission validates the
// quote first, persists it, and advances the source lead to quoted.
type Service struct {
	repo          Repository
	pdf           *PDFGenerator
	email         notify.EmailSender
	leadFlow      *leads.Service
	payments      *payments.Service
	messagesRepo  messages.Repository
	outbox        outboxWriter
	metrics       MetricsRecorder
	notesMaxChars int
	logger        *logging.Logger
}

// WithMetrics attaches a metrics recorder and returns the service.
func (s *Service) WithMetrics(m MetricsRecorder) *Service {
	s.metrics = m
	return s
}

// WithOutbox attaches an event outbox and returns the service.
func (s *Service) WithOutbox(w outboxWriter) *Service {
	s.outbox = w
	return s
}

func (s *Service) recordEmitted(channel string) {
	if s.metrics != nil {
		s.metrics.QuoteEmitted(channel)
	}
}

// NewService creates a quotes service. email, payments, messagesRepo,
// and outbox may be nil when the corresponding flow is disabled.
func NewService(
	repo Repository,
	pdf *PDFGenerator,
	email notify.EmailSender,
	leadFlow *leads.Service,
	paymentsSvc *payments.Service,
	messagesRepo messages.Repository,
	outbox outboxWriter,
	notesMaxChars int,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if notesMaxChars <= 0 {
		notesMaxChars = DefaultNotesMaxChars
	}
	return &Service{
		repo:          repo,
		pdf:           pdf,
		email:         email,
		leadFlow:      leadFlow,
		payments:      paymentsSvc,
		messagesRepo:  messagesRepo,
		outbox:        outbox,
		notesMaxChars: notesMaxChars,
		logger:        logger,
	}
}

// EmitPDF renders the quote document, records the quote, and advances
// the lead. Validation failure blocks everything.
func (s *Service) EmitPDF(ctx context.Context, q *Quote) ([]byte, error) {
	if err := q.Validate(s.notesMaxChars); err != nil {
		return nil, err
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	doc, err := s.pdf.Generate(q)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.advanceLead(ctx, q.LeadID)
	s.recordEmitted("pdf")

	s.logger.Info("quote pdf generated", "quote_id", q.ID, "lead_id", q.LeadID, "total", q.Total())
	return doc, nil
}

// EmitEmail sends the quote by email with the PDF attached, records the
// quote, and advances the lead. A delivery failure leaves the lead and
// quote untouched.
func (s *Service) EmitEmail(ctx context.Context, q *Quote) error {
	if err := q.Validate(s.notesMaxChars); err != nil {
		return err
	}
	if s.email == nil {
		return fmt.Errorf("quotes: email sender not configured")
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	doc, err := s.pdf.Generate(q)
	if err != nil {
		return err
	}

	total := messages.FormatAmount(q.Total(), q.Currency)
	msg := notify.EmailMessage{
		To:      q.ClientEmail,
		ToName:  q.ClientName,
		Subject: "Tu cotización: " + total,
		Body: fmt.Sprintf("Hola %s,\n\nTe compartimos tu cotización por %s. "+
			"Encuentra el detalle en el documento adjunto.\n", q.ClientName, total),
		HTML: fmt.Sprintf("<p>Hola %s,</p><p>Te compartimos tu cotización por "+
			"<strong>%s</strong>. Encuentra el detalle en el documento adjunto.</p>",
			html.EscapeString(q.ClientName), total),
		Attachments: []notify.EmailAttachment{{
			Filename:    "cotizacion-" + q.ID + ".pdf",
			ContentType: "application/pdf",
			Data:        doc,
		}},
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("quotes: send email: %w", err)
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return err
	}
	s.advanceLead(ctx, q.LeadID)

	if s.outbox != nil {
		_, err := s.outbox.Insert(ctx, events.TypeQuoteEmailed, events.QuoteEmailedV1{
			EventID:    uuid.New().String(),
			QuoteID:    q.ID,
			LeadID:     q.LeadID,
			Recipient:  q.ClientEmail,
			TotalCents: q.Total().Shift(2).Round(0).IntPart(),
			Currency:   q.Currency,
			SentAt:     time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("failed to enqueue quote event", "error", err, "quote_id", q.ID)
		}
	}

	s.recordEmitted("email")
	s.logger.Info("quote emailed", "quote_id", q.ID, "to", q.ClientEmail, "total", q.Total())
	return nil
}

// SendToChat creates a payment link for the quote total and appends the
// quote message to a conversation. The quote itself is not persisted by
// this flow; only the payment and its message are.
func (s *Service) SendToChat(ctx context.Context, q *Quote, conversationID, professionalID, optionalMessage string) (*messages.Message, error) {
	if err := q.Validate(s.notesMaxChars); err != nil {
		return nil, err
	}
	if s.payments == nil || s.messagesRepo == nil {
		return nil, fmt.Errorf("quotes: chat flow not configured")
	}

	description := q.Lines[0].ServiceName
	if len(q.Lines) > 1 {
		description = fmt.Sprintf("%s y %d más", description, len(q.Lines)-1)
	}

	payment, err := s.payments.CreateQuotePayment(ctx, conversationID, professionalID, description, q.Total(), q.Currency)
	if err != nil {
		return nil, err
	}

	att := messages.AttachQuotePayment(optionalMessage, q.Total(), q.Currency, payment.URL, payment.ID)
	msg, err := s.messagesRepo.Append(ctx, &messages.AppendMessageRequest{
		ConversationID:     conversationID,
		SenderID:           professionalID,
		SenderType:         messages.SenderProfessional,
		Content:            att.Content,
		Metadata:           att.Metadata,
		QuotePaymentStatus: messages.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	s.recordEmitted("chat")
	s.logger.Info("quote shared in chat", "conversation_id", conversationID, "payment_id", payment.ID)
	return msg, nil
}

// advanceLead moves the source lead to quoted. Emission already
// happened, so a status failure is logged rather than returned.
func (s *Service) advanceLead(ctx context.Context, leadID string) {
	if s.leadFlow == nil || leadID == "" {
		return
	}
	if _, err := s.leadFlow.AdvanceToQuoted(ctx, leadID); err != nil {
		s.logger.Error("failed to advance lead after quote", "error", err, "lead_id", leadID)
	}
}
