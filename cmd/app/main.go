package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apiHttp "github.com/vibe-gaming/dsr-connector/internal/api/http"
	"github.com/vibe-gaming/dsr-connector/internal/cache"
	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/queue/asynqserver"
	queueClient "github.com/vibe-gaming/dsr-connector/internal/queue/client"
	"github.com/vibe-gaming/dsr-connector/internal/server"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	logger "github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func main() {
	// Init cfg from environment variables
	_ = godotenv.Load()
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	appLogger.Info("starting dsr connector api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Redis backs the request queue; the api still serves synchronous calls without it
	rdb, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Warn("redis is not reachable, queued requests will fail", zap.Error(err))
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				appLogger.Error("error when closing redis", zap.Error(err))
			}
		}()
	}

	redisOpts := asynqserver.RedisOptions(cfg.Cache)
	asynqClient := asynq.NewClient(redisOpts)
	defer asynqClient.Close()
	restoreClient := queueClient.SetClient(asynqClient)
	defer restoreClient()

	inspector := asynq.NewInspector(redisOpts)
	defer inspector.Close()

	// Services, Workers & API Handlers
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
	handlers := apiHttp.NewHandlers(apiHttp.Deps{
		Services:  services,
		Workers:   workers,
		Config:    cfg,
		Redis:     rdb,
		Enqueue:   queueClient.Enqueue,
		Inspector: inspector,
	})

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init())
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("addr", srv.Addr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
