package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// GetStats godoc
// @Summary Platform content and user counts
// @Tags stats
// @Produce json
// @Success 200 {object} util.Response{data=service.PlatformStats}
// @Router /stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	stats, err := c.StatsService.GetStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
