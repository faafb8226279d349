package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

var stripeTracer = otel.Tracer("bloomwell.internal.payments.stripe")

// LinkParams describes one hosted payment link to create.
type LinkParams struct {
	PaymentID      string
	ConversationID string
	Description    string
	AmountCents    int64
	Currency       string
}

// Link is the provider's answer: a hosted URL plus its session reference.
type Link struct {
	URL         string
	ProviderRef string
}

// LinkCreator produces hosted payment links. StripeLinkService is the
// production implementation.
type LinkCreator interface {
	CreateLink(ctx context.Context, params LinkParams) (*Link, error)
}

// StripeLinkService creates Stripe Checkout Sessions over the raw HTTP
// API. No SDK: the two fields we read back do not justify the
// dependency, and the form encoding is stable across API versions.
type StripeLinkService struct {
	secretKey  string
	successURL string
	cancelURL  string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *logging.Logger
	dryRun     bool
}

// NewStripeLinkService creates a Stripe link service.
func NewStripeLinkService(secretKey, successURL, cancelURL string, logger *logging.Logger) *StripeLinkService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StripeLinkService{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		baseURL:    "https://api.stripe.com",
		apiVersion: "2024-12-18.acacia",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		dryRun:     secretKey == "",
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (s *StripeLinkService) WithBaseURL(baseURL string) *StripeLinkService {
	if baseURL != "" {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
	return s
}

// WithDryRun enables dry-run mode (returns fake URLs without calling Stripe).
func (s *StripeLinkService) WithDryRun(enabled bool) *StripeLinkService {
	s.dryRun = enabled
	return s
}

// CreateLink creates a checkout session and returns its hosted URL.
func (s *StripeLinkService) CreateLink(ctx context.Context, params LinkParams) (*Link, error) {
	ctx, span := stripeTracer.Start(ctx, "stripe.create_checkout_session")
	defer span.End()
	span.SetAttributes(
		attribute.String("bloomwell.payment_id", params.PaymentID),
		attribute.Int64("bloomwell.amount_cents", params.AmountCents),
	)

	if s.dryRun {
		fakeID := "cs_dryrun_" + uuid.New().String()[:8]
		s.logger.Info("stripe dry run: skipping checkout session creation",
			"payment_id", params.PaymentID, "amount_cents", params.AmountCents)
		return &Link{
			URL:         "https://checkout.stripe.com/dry-run/" + fakeID,
			ProviderRef: fakeID,
		}, nil
	}

	currency := strings.ToLower(params.Currency)
	if currency == "" {
		currency = "mxn"
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		description = "Cotización"
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprintf("%d", params.AmountCents))
	form.Set("line_items[0][price_data][product_data][name]", description)
	form.Set("line_items[0][quantity]", "1")
	if s.successURL != "" {
		form.Set("success_url", s.successURL)
	}
	if s.cancelURL != "" {
		form.Set("cancel_url", s.cancelURL)
	}

	// Webhook correlation happens through this metadata.
	form.Set("metadata[payment_id]", params.PaymentID)
	form.Set("metadata[conversation_id]", params.ConversationID)
	form.Set("payment_intent_data[metadata][payment_id]", params.PaymentID)

	apiURL := s.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payments: stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", s.apiVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: stripe http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payments: stripe api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("payments: stripe decode: %w", err)
	}
	if parsed.URL == "" {
		return nil, fmt.Errorf("payments: stripe response missing checkout url")
	}

	return &Link{URL: parsed.URL, ProviderRef: parsed.ID}, nil
}

// stripeCheckoutSession is the subset of Stripe's Checkout Session we need.
type stripeCheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
