package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/queue/task"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func (h *Handler) initRequestsRoutes(api *gin.RouterGroup) {
	requests := api.Group("/requests")
	{
		requests.POST("", h.enqueueRequest)
		requests.GET("/:id", h.getRequest)
	}
}

type enqueueRequest struct {
	Action     string             `json:"action" binding:"required,dsraction"`
	Identifier string             `json:"identifier" binding:"required_unless=Action SEED,omitempty,email"`
	Inputs     []domain.SeedInput `json:"inputs" binding:"required_if=Action SEED,dive"`
}

type requestResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	State       string          `json:"state"`
	Retried     int             `json:"retried"`
	LastError   string          `json:"last_error,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

func newRequestResponse(info *asynq.TaskInfo) requestResponse {
	res := requestResponse{
		ID:        info.ID,
		Type:      info.Type,
		State:     info.State.String(),
		Retried:   info.Retried,
		LastError: info.LastErr,
	}
	if !info.CompletedAt.IsZero() {
		res.CompletedAt = &info.CompletedAt
	}
	if json.Valid(info.Result) {
		res.Result = info.Result
	}
	return res
}

// @Summary Enqueue Request
// @Tags Requests
// @Description Queue an ACCESS, ERASURE or SEED request for the worker
// @ModuleID enqueueRequest
// @Accept  json
// @Produce  json
// @Param input body enqueueRequest true "request"
// @Success 202 {object} requestResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 503 {object} ErrorStruct
// @Router /requests [post]
func (h *Handler) enqueueRequest(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	var (
		t   *asynq.Task
		err error
	)
	action := domain.Action(req.Action)
	if action == domain.ActionSeed {
		t, err = task.NewSeedTask(req.Inputs, h.config.Queue.MaxRetry)
	} else {
		t, err = task.NewRequestTask(action, req.Identifier, h.config.Queue.MaxRetry)
	}
	if err != nil {
		failedResponse(c, err)
		return
	}

	info, err := h.enqueue(c.Request.Context(), t)
	if err != nil {
		logger.Error("enqueue request failed", zap.Error(err), zap.String("type", t.Type()))
		errorResponse(c, http.StatusServiceUnavailable, QueueUnavailableCode)
		return
	}

	logger.Info("request enqueued", zap.String("id", info.ID), zap.String("type", info.Type))
	c.JSON(http.StatusAccepted, newRequestResponse(info))
}

// @Summary Get Request
// @Tags Requests
// @Description State and result of a queued request
// @ModuleID getRequest
// @Produce  json
// @Param id path string true "request id"
// @Success 200 {object} requestResponse
// @Failure 404 {object} ErrorStruct
// @Failure 503 {object} ErrorStruct
// @Router /requests/{id} [get]
func (h *Handler) getRequest(c *gin.Context) {
	info, err := h.inspector.GetTaskInfo(task.DSRQueueName, c.Param("id"))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			errorResponse(c, http.StatusNotFound, RequestNotFoundCode)
			return
		}
		logger.Error("get request failed", zap.Error(err))
		errorResponse(c, http.StatusServiceUnavailable, QueueUnavailableCode)
		return
	}

	c.JSON(http.StatusOK, newRequestResponse(info))
}
