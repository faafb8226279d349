// Package router assembles the HTTP surface: public intake and webhook
// routes, authenticated chat and booking routes, and the JWT-protected
// admin panel.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bloomwell/wellness-platform/internal/availability"
	"github.com/bloomwell/wellness-platform/internal/catalog"
	"github.com/bloomwell/wellness-platform/internal/companies"
	"github.com/bloomwell/wellness-platform/internal/export"
	httpmiddleware "github.com/bloomwell/wellness-platform/internal/http/middleware"
	"github.com/bloomwell/wellness-platform/internal/leads"
	"github.com/bloomwell/wellness-platform/internal/messages"
	"github.com/bloomwell/wellness-platform/internal/payments"
	"github.com/bloomwell/wellness-platform/internal/quotes"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Config holds router configuration. Nil handlers leave their routes
// unregistered so partial deployments stay possible.
type Config struct {
	Logger              *logging.Logger
	CompaniesHandler    *companies.Handler
	LeadsHandler        *leads.Handler
	CatalogHandler      *catalog.Handler
	MessagesHandler     *messages.Handler
	AvailabilityHandler *availability.Handler
	QuotesHandler       *quotes.Handler
	ExportHandler       *export.Handler
	StripeWebhook       *payments.StripeWebhookHandler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
	LeadIntakeRate      float64
	LeadIntakeBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: health, metrics, webhooks, lead intake, catalog.
	r.Group(func(public chi.Router) {
		public.Get("/health", handleHealth)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.StripeWebhook != nil {
			public.Post("/webhooks/stripe", cfg.StripeWebhook.Handle)
		}
		if cfg.LeadsHandler != nil {
			rate, burst := cfg.LeadIntakeRate, cfg.LeadIntakeBurst
			if rate <= 0 {
				rate = 1
			}
			if burst <= 0 {
				burst = 5
			}
			public.With(httpmiddleware.RateLimit(rate, burst)).Post("/leads", cfg.LeadsHandler.CreateLead)
		}
		if cfg.CatalogHandler != nil {
			public.Route("/catalog", func(c chi.Router) {
				c.Get("/services", cfg.CatalogHandler.ListServices)
				c.Get("/programs", cfg.CatalogHandler.ListPrograms)
				c.Get("/challenges", cfg.CatalogHandler.ListChallenges)
			})
		}
	})

	// Chat and booking routes used by the patient and professional apps.
	if cfg.MessagesHandler != nil {
		r.Route("/conversations", func(c chi.Router) {
			c.Post("/", cfg.MessagesHandler.CreateConversation)
			c.Get("/", cfg.MessagesHandler.ListConversations)
			c.Route("/{conversationID}", func(conv chi.Router) {
				conv.Get("/messages", cfg.MessagesHandler.ListMessages)
				conv.Post("/messages", cfg.MessagesHandler.SendMessage)
				conv.Post("/attachments", cfg.MessagesHandler.Attach)
				conv.Post("/read", cfg.MessagesHandler.MarkRead)
				conv.Get("/ws", cfg.MessagesHandler.HandleWebSocket)
				if cfg.QuotesHandler != nil {
					conv.Post("/quote", cfg.QuotesHandler.SendToChat)
				}
			})
		})
	}
	if cfg.AvailabilityHandler != nil {
		r.Get("/professionals/{professionalID}/availability", cfg.AvailabilityHandler.ListSlots)
	}
	if cfg.QuotesHandler != nil {
		r.Post("/quotes/preview", cfg.QuotesHandler.Preview)
	}

	// Admin panel, JWT protected.
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

		if cfg.CompaniesHandler != nil {
			admin.Route("/companies", func(c chi.Router) {
				c.Post("/", cfg.CompaniesHandler.CreateCompany)
				c.Get("/", cfg.CompaniesHandler.ListCompanies)
				c.Get("/stats", cfg.CompaniesHandler.GetStats)
				if cfg.ExportHandler != nil {
					c.Get("/export", cfg.ExportHandler.Export)
				}
				c.Route("/{companyID}", func(cc chi.Router) {
					cc.Get("/", cfg.CompaniesHandler.GetCompany)
					cc.Put("/", cfg.CompaniesHandler.UpdateCompany)
					cc.Delete("/", cfg.CompaniesHandler.DeleteCompany)
				})
			})
		}
		if cfg.LeadsHandler != nil {
			admin.Route("/leads", func(l chi.Router) {
				l.Get("/", cfg.LeadsHandler.ListLeads)
				l.Patch("/{leadID}/status", cfg.LeadsHandler.UpdateStatus)
				l.Post("/{leadID}/convert", cfg.LeadsHandler.Convert)
				if cfg.QuotesHandler != nil {
					l.Get("/{leadID}/quotes", cfg.QuotesHandler.ListByLead)
					l.Post("/{leadID}/quote/pdf", cfg.QuotesHandler.EmitPDF)
					l.Post("/{leadID}/quote/email", cfg.QuotesHandler.EmitEmail)
				}
			})
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
