package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/models/dto"
	"github.com/lucasferr/cursada/internal/app/services"
	"github.com/lucasferr/cursada/internal/middleware"
)

// StatsController serves the administrative dashboard summary
type StatsController struct {
	statsService services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetPlatformStats returns catalog and enrollment counts
// @Summary Platform statistics
// @Description Returns published/unpublished course counts, total enrollments and the most popular courses
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.PlatformStats} "Statistics"
// @Router /stats [get]
func (c *StatsController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.statsService.GetPlatformStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
