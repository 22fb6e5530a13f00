package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hancock/docs"
	"hancock/internal/config"
	"hancock/internal/docusign"
	handlers "hancock/internal/http/handler"
	"hancock/internal/http/middleware"
	"hancock/internal/logger"
	hotel "hancock/internal/otel"
	"hancock/internal/service"
	"hancock/internal/storage"
)

// @title Hancock Envelope API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()

	shutdownTracing, err := hotel.Init(ctx, cfg.Tracing)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	dsMetrics, err := docusign.NewMetrics(reg)
	if err != nil {
		slog.Error("failed to register docusign metrics", "error", err)
		os.Exit(1)
	}

	// The server starts without credentials so /healthz and /metrics stay up; envelope
	// routes answer CONFIGURATION_MISSING until DOCUSIGN_* is set.
	var (
		transport docusign.Transport = docusign.NewClient(cfg.DocuSign.BaseURL, nil, docusign.WithMetrics(dsMetrics))
		pinger    handlers.Pinger
	)
	if client, err := docusign.NewFromConfig(cfg.DocuSign, docusign.WithMetrics(dsMetrics)); err == nil {
		transport = client
		pinger = client
	} else {
		slog.Warn("docusign client not configured", "error", err)
	}

	// Object storage is optional and only used as a document source
	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	envelopeSvc := service.NewEnvelopeService(transport, cfg.DocuSign)
	callbackSvc := service.NewCallbackService(transport, cfg.DocuSign)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    32 * 1024 * 1024,
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		slog.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Dependencies{
		Pinger:    pinger,
		Envelopes: envelopeSvc,
		Callbacks: callbackSvc,
		Store:     objStore,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr, "docusign_configured", cfg.DocuSign.Configured())

	if err := app.Listen(addr); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
