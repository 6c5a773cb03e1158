package asynqserver

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/cache"
	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/queue/processor"
	"github.com/vibe-gaming/dsr-connector/internal/queue/task"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency:  cfg.Queue.Concurrency,
			LogLevel:     asynq.WarnLevel,
			Logger:       logger.Logger().Sugar(),
			Queues:       queues,
			ErrorHandler: asynq.ErrorHandlerFunc(reportFailure),
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			PoolSize: cfg.Redis.PoolSize,
		}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.AccessTaskName, processor.NewAccessProcessor(workers))
	mux.Handle(task.ErasureTaskName, processor.NewErasureProcessor(workers))
	mux.Handle(task.SeedTaskName, processor.NewSeedProcessor(workers))
	queues := map[string]int{
		task.DSRQueueName: 1,
	}
	return mux, queues
}

func reportFailure(ctx context.Context, t *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	id, _ := asynq.GetTaskID(ctx)

	logger.Error("dsr task failed",
		zap.String("id", id),
		zap.String("type", t.Type()),
		zap.Int("retried", retried),
		zap.Int("max_retry", maxRetry),
		zap.Error(err),
	)
}
