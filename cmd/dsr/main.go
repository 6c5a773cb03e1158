package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	"github.com/vibe-gaming/dsr-connector/pkg/fixture"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
	"github.com/vibe-gaming/dsr-connector/pkg/validator"
)

// dsr runs one action against the configured test identifier:
//
//	dsr ACCESS | ERASURE | SEED
func main() {
	os.Exit(run())
}

func run() int {
	action, err := domain.ParseAction(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	_ = godotenv.Load()
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	seed := domain.SeedInput{Identifier: cfg.TestData.Identifier, MailingList: cfg.TestData.MailingList}
	if err := validator.Struct(seed); err != nil {
		appLogger.Error("invalid test data", zap.Error(err))
		return 1
	}

	httpClient := &http.Client{Timeout: cfg.Mailgun.Timeout}
	var replay *fixture.Transport
	if cfg.Fixtures.Dir != "" {
		defs, err := fixture.LoadAction(cfg.Fixtures.Dir, string(action))
		if err != nil {
			appLogger.Error("load fixtures failed", zap.Error(err))
			return 1
		}
		replay = fixture.NewTransport(defs)
		httpClient.Transport = replay
		appLogger.Debug("replaying recorded mailgun responses", zap.Int("definitions", len(defs)))
	}

	client := mailgun.NewClient(mailgun.Config{
		APIKey:            cfg.Mailgun.APIKey,
		BaseURL:           cfg.Mailgun.BaseURL,
		DefaultPageLimit:  cfg.Mailgun.PageLimit,
		RequestsPerSecond: cfg.Mailgun.RPS,
		HTTPClient:        httpClient,
	})
	services := service.NewServices(service.Deps{
		Provider:       client,
		PageLimit:      client.PageLimit(),
		MaxConcurrency: cfg.Mailgun.MaxConcurrency,
	})
	workers := worker.NewWorkers(worker.Deps{Services: services, SeedConcurrency: cfg.Mailgun.MaxConcurrency})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if action == domain.ActionSeed {
		err = workers.Integration.SeedIntegration(ctx, []domain.SeedInput{seed})
	} else {
		_, err = workers.Integration.RunIntegration(ctx, seed.Identifier, action)
	}
	if err != nil {
		appLogger.Error("integration failed", zap.String("action", string(action)), zap.Error(err))
		return 1
	}

	if replay != nil {
		if pending := replay.Pending(); len(pending) > 0 {
			appLogger.Warn("recorded responses were not used", zap.Int("pending", len(pending)))
		}
	}

	return 0
}
