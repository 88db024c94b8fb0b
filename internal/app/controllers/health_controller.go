package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/models/dto"
	"github.com/yigit/coursetracker/internal/pkg/logger"
)

// LivenessChecker verifies the database connection, reopening it if needed
type LivenessChecker interface {
	EnsureLive(ctx context.Context) error
}

// HealthController serves the liveness endpoints
type HealthController struct {
	db LivenessChecker
}

// NewHealthController creates a new HealthController
func NewHealthController(db LivenessChecker) *HealthController {
	return &HealthController{db: db}
}

// Ping answers without touching the database
// @Summary Ping
// @Tags health
// @Success 200 {object} dto.MessageResponse
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("pong"))
}

// Health reports whether the database connection is usable
// @Summary Health
// @Tags health
// @Success 200 {object} dto.MessageResponse
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if err := c.db.EnsureLive(ctx.Request.Context()); err != nil {
		logger.Ctx(ctx.Request.Context()).Error().Err(err).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrorCodeDatabaseError, "Database unavailable"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
}
