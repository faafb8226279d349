package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bloomwell/wellness-platform/internal/api/router"
	"github.com/bloomwell/wellness-platform/internal/availability"
	"github.com/bloomwell/wellness-platform/internal/catalog"
	"github.com/bloomwell/wellness-platform/internal/companies"
	appconfig "github.com/bloomwell/wellness-platform/internal/config"
	"github.com/bloomwell/wellness-platform/internal/events"
	"github.com/bloomwell/wellness-platform/internal/export"
	"github.com/bloomwell/wellness-platform/internal/leads"
	"github.com/bloomwell/wellness-platform/internal/messages"
	"github.com/bloomwell/wellness-platform/internal/notify"
	"github.com/bloomwell/wellness-platform/internal/observability/metrics"
	"github.com/bloomwell/wellness-platform/internal/payments"
	"github.com/bloomwell/wellness-platform/internal/quotes"
	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// emailSenderOrNil avoids handing a typed nil pointer to the interface
// fields downstream when SendGrid is not configured.
func emailSenderOrNil(s *notify.SendGridSender) notify.EmailSender {
	if s == nil {
		return nil
	}
	return s
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

func main() {
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting wellness-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is optional in development; without it every store falls
	// back to its in-memory implementation.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var companyRepo companies.Repository
	var leadRepo leads.Repository
	var messagesRepo messages.Repository
	var availabilityRepo availability.Repository
	var paymentsRepo payments.Repository
	var quotesRepo quotes.Repository
	var catalogLoader catalog.Loader
	if pool != nil {
		companyRepo = companies.NewPostgresRepository(pool)
		leadRepo = leads.NewPostgresRepository(pool)
		messagesRepo = messages.NewPostgresRepository(pool)
		availabilityRepo = availability.NewPostgresRepository(pool)
		paymentsRepo = payments.NewPostgresRepository(pool)
		quotesRepo = quotes.NewPostgresRepository(pool)
		catalogLoader = catalog.NewRepository(pool)
	} else {
		companyRepo = companies.NewInMemoryRepository()
		leadRepo = leads.NewInMemoryRepository()
		messagesRepo = messages.NewInMemoryRepository()
		availabilityRepo = availability.NewInMemoryRepository()
		paymentsRepo = payments.NewInMemoryRepository()
		quotesRepo = quotes.NewInMemoryRepository()
		catalogLoader = catalog.NewStaticLoader()
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}
	catalogStore := catalog.NewStore(catalogLoader, redisClient, cfg.CatalogTTL, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	platformMetrics := metrics.NewPlatformMetrics(registry)

	leadsService := leads.NewService(leadRepo, companyRepo, logger)
	hub := messages.NewHub()

	emailSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)

	linkService := payments.NewStripeLinkService(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL, logger)
	paymentsService := payments.NewService(paymentsRepo, linkService, logger)

	var outboxStore *events.OutboxStore
	var processedStore *events.ProcessedStore
	if pool != nil {
		outboxStore = events.NewOutboxStore(pool)
		processedStore = events.NewProcessedStore(pool)
	}

	quotesService := quotes.NewService(
		quotesRepo,
		quotes.NewPDFGenerator(cfg.SendGridFromName),
		emailSenderOrNil(emailSender),
		leadsService,
		paymentsService,
		messagesRepo,
		nil,
		cfg.QuoteNotesMaxChars,
		logger,
	).WithMetrics(platformMetrics)
	if outboxStore != nil {
		quotesService.WithOutbox(outboxStore)
		leadsService.WithOutbox(outboxStore)
	}

	companiesHandler := companies.NewHandler(companyRepo, leadRepo, logger)
	leadsHandler := leads.NewHandler(leadRepo, leadsService, logger)
	catalogHandler := catalog.NewHandler(catalogStore, logger)
	messagesHandler := messages.NewHandler(messagesRepo, catalogStore, hub, platformMetrics, logger)
	availabilityHandler := availability.NewHandler(availabilityRepo, cfg.AvailabilityHorizonDays, cfg.AvailabilitySlotCap, logger)
	quotesHandler := quotes.NewHandler(quotesService, quotesRepo, logger)
	exportHandler := export.NewHandler(export.NewService(companyRepo, leadRepo), logger)

	var stripeWebhook *payments.StripeWebhookHandler
	if processedStore != nil {
		stripeWebhook = payments.NewStripeWebhookHandler(
			cfg.StripeWebhookSecret,
			paymentsRepo,
			messagesRepo,
			processedStore,
			outboxStore,
			logger,
		).WithMetrics(platformMetrics).WithBroadcaster(hub)
	}

	// Outbox poller delivering payment and quote notifications.
	if outboxStore != nil && emailSender != nil {
		resolver := notify.StaticResolver{Email: cfg.NotifyInboxEmail, Name: cfg.NotifyInboxName}
		notifier := notify.NewService(emailSender, resolver, logger)
		deliverer := events.NewDeliverer(outboxStore, notifier, logger).
			WithBatchSize(cfg.OutboxBatchSize).
			WithInterval(cfg.OutboxInterval)
		go deliverer.Start(ctx)
	}

	routerCfg := &router.Config{
		Logger:              logger,
		CompaniesHandler:    companiesHandler,
		LeadsHandler:        leadsHandler,
		CatalogHandler:      catalogHandler,
		MessagesHandler:     messagesHandler,
		AvailabilityHandler: availabilityHandler,
		QuotesHandler:       quotesHandler,
		ExportHandler:       exportHandler,
		StripeWebhook:       stripeWebhook,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  splitOrigins(cfg.CORSAllowedOrigins),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
