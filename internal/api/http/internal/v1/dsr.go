package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

func (h *Handler) initDatapointsRoutes(api *gin.RouterGroup) {
	api.POST("/seed", h.seed)
	api.POST("/access", h.access)
	api.POST("/erasure", h.erasure)
}

type seedRequest struct {
	Inputs []domain.SeedInput `json:"inputs" binding:"required,min=1,dive"`
}

type seedResponse struct {
	Seeded int `json:"seeded"`
}

type identifierRequest struct {
	Identifier string `json:"identifier" binding:"required,email"`
}

type erasureRequest struct {
	Identifier  string                    `json:"identifier" binding:"required,email"`
	ContextDict *domain.ContextDictionary `json:"contextDict"`
}

type erasureResponse struct {
	Identifier string   `json:"identifier"`
	Erased     []string `json:"erased"`
}

// @Summary Seed
// @Tags Datapoints
// @Description Subscribe identifiers to mailing lists, upserting existing members
// @ModuleID seed
// @Accept  json
// @Produce  json
// @Param input body seedRequest true "identifiers and lists"
// @Success 200 {object} seedResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Router /seed [post]
func (h *Handler) seed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.workers.Integration.SeedIntegration(c.Request.Context(), req.Inputs); err != nil {
		failedResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, seedResponse{Seeded: len(req.Inputs)})
}

// @Summary Access
// @Tags Datapoints
// @Description Mailing lists the identifier is subscribed to, plus the context for a later erasure
// @ModuleID access
// @Accept  json
// @Produce  json
// @Param input body identifierRequest true "identifier"
// @Success 200 {object} domain.AccessResult
// @Failure 400 {object} ValidationErrorStruct
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Router /access [post]
func (h *Handler) access(c *gin.Context) {
	var req identifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Datapoints.Access(c.Request.Context(), req.Identifier)
	if err != nil {
		failedResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary Erasure
// @Tags Datapoints
// @Description Remove the identifier from the lists named by an access context; no context is a no-op
// @ModuleID erasure
// @Accept  json
// @Produce  json
// @Param input body erasureRequest true "identifier and access context"
// @Success 200 {object} erasureResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Router /erasure [post]
func (h *Handler) erasure(c *gin.Context) {
	var req erasureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Datapoints.Erasure(c.Request.Context(), req.Identifier, req.ContextDict); err != nil {
		failedResponse(c, err)
		return
	}

	erased := req.ContextDict.Lists()
	if erased == nil {
		erased = []string{}
	}
	logger.Info("erasure completed", zap.String("identifier", req.Identifier), zap.Int("lists", len(erased)))

	c.JSON(http.StatusOK, erasureResponse{Identifier: req.Identifier, Erased: erased})
}
