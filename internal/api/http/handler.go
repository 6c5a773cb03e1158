package apiHttp

import (
	"context"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/pkg/logger"
	"github.com/vibe-gaming/dsr-connector/pkg/validator"

	internalV1 "github.com/vibe-gaming/dsr-connector/internal/api/http/internal/v1"
	"github.com/vibe-gaming/dsr-connector/internal/config"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/internal/worker"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

type Handler struct {
	services  *service.Services
	workers   *worker.Workers
	config    *config.Config
	redis     redis.UniversalClient
	enqueue   internalV1.EnqueueFunc
	inspector internalV1.TaskInspector
}

type Deps struct {
	Services  *service.Services
	Workers   *worker.Workers
	Config    *config.Config
	Redis     redis.UniversalClient
	Enqueue   internalV1.EnqueueFunc
	Inspector internalV1.TaskInspector
}

func NewHandlers(deps Deps) *Handler {
	return &Handler{
		services:  deps.Services,
		workers:   deps.Workers,
		config:    deps.Config,
		redis:     deps.Redis,
		enqueue:   deps.Enqueue,
		inspector: deps.Inspector,
	}
}

func (h *Handler) Init() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		requestIDMiddleware,
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	router.GET("/healthz", h.healthz)

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.workers, h.config, h.enqueue, h.inspector)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}

// healthz reports the queue broker; without one configured the API is still healthy.
func (h *Handler) healthz(c *gin.Context) {
	if h.redis == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		logger.Warn("healthz redis ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": "ok"})
}
