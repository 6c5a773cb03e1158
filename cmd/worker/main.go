package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/queue/asynqserver"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	logger "github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	appLogger.Info("starting dsr worker",
		zap.String("env", cfg.Env),
		zap.Int("concurrency", cfg.Queue.Concurrency),
	)

	client := mailgun.NewClient(mailgun.Config{
		APIKey:            cfg.Mailgun.APIKey,
		BaseURL:           cfg.Mailgun.BaseURL,
		DefaultPageLimit:  cfg.Mailgun.PageLimit,
		Timeout:           cfg.Mailgun.Timeout,
		RequestsPerSecond: cfg.Mailgun.RPS,
	})
	services := service.NewServices(service.Deps{
		Provider:       client,
		PageLimit:      client.PageLimit(),
		MaxConcurrency: cfg.Mailgun.MaxConcurrency,
	})
	workers := worker.NewWorkers(worker.Deps{Services: services, SeedConcurrency: cfg.Mailgun.MaxConcurrency})

	// Run blocks until SIGTERM or SIGINT
	srv, mux := asynqserver.New(cfg, workers)
	if err := srv.Run(mux); err != nil {
		appLogger.Error("asynq server stopped with error", zap.Error(err))
		os.Exit(1)
	}

	appLogger.Info("worker stopped")
}
