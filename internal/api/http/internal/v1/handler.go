package v1

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/internal/worker"

	"github.com/gin-gonic/gin"
)

// @title DSR Connector API
// @version 1.0
// @description Data subject requests against Mailgun mailing lists

// @BasePath /api/v1

// EnqueueFunc submits a task to the request queue.
type EnqueueFunc func(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)

// TaskInspector reads back queued requests. *asynq.Inspector satisfies it.
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

type Handler struct {
	services  *service.Services
	workers   *worker.Workers
	config    *config.Config
	enqueue   EnqueueFunc
	inspector TaskInspector
}

func NewHandler(
	services *service.Services,
	workers *worker.Workers,
	config *config.Config,
	enqueue EnqueueFunc,
	inspector TaskInspector,
) *Handler {
	return &Handler{
		services:  services,
		workers:   workers,
		config:    config,
		enqueue:   enqueue,
		inspector: inspector,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initDatapointsRoutes(v1)
	h.initRequestsRoutes(v1)
}
