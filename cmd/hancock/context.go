package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"hancock/internal/config"
	"hancock/internal/docusign"
	"hancock/internal/logger"
	"hancock/internal/service"
	"hancock/internal/storage"
)

// services is everything a command may need. Built once per invocation.
type services struct {
	cfg       *config.AppConfig
	envelopes service.EnvelopeService
	callbacks service.CallbackService
	store     storage.Storage
	pinger    interface{ Ping(context.Context) error }
}

type serviceFactory func(ctx context.Context, cfg *config.AppConfig) (*services, error)

type commandContext struct {
	envFile string
	output  string

	build serviceFactory

	once sync.Once
	svc  *services
	err  error
}

func newCommandContext(build serviceFactory) *commandContext {
	return &commandContext{build: build, output: outputAuto}
}

// ensureServices loads the environment file if one was given, then the configuration, then
// builds the services.
func (c *commandContext) ensureServices(ctx context.Context) (*services, error) {
	c.once.Do(func() {
		if path := strings.TrimSpace(c.envFile); path != "" {
			if err := godotenv.Load(path); err != nil {
				c.err = fmt.Errorf("load env file: %w", err)
				return
			}
		}
		cfg := config.Load()
		slog.SetDefault(logger.New(os.Stderr, &logger.Config{Level: cfg.Log.Level, Format: "text"}))
		c.svc, c.err = c.build(ctx, cfg)
	})
	return c.svc, c.err
}

func buildServices(ctx context.Context, cfg *config.AppConfig) (*services, error) {
	client, err := docusign.NewFromConfig(cfg.DocuSign)
	if err != nil {
		return nil, err
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}
	return &services{
		cfg:       cfg,
		envelopes: service.NewEnvelopeService(client, cfg.DocuSign),
		callbacks: service.NewCallbackService(client, cfg.DocuSign),
		store:     store,
		pinger:    client,
	}, nil
}
