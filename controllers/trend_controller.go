package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daylog/middlewares"
	"daylog/services"
)

type TrendController struct {
	Trends *services.TrendService
	Logger *zap.SugaredLogger
}

func NewTrendController(trends *services.TrendService, logger *zap.SugaredLogger) *TrendController {
	return &TrendController{Trends: trends, Logger: logger}
}

// Get returns the caller's trend series, one point per logged day in
// ascending date order.
func (tc *TrendController) Get(c *gin.Context) {
	points, err := tc.Trends.GetTrends(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, tc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
