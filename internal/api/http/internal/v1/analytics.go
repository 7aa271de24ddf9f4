package v1

import (
	"net/http"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAnalyticsRoutes(api *gin.RouterGroup) {
	api.GET("/analytics", h.getAnalytics)
}

// @Summary Spending summary
// @Tags Analytics
// @Description Total spend and per-category sums for the authenticated user
// @Produce  json
// @Success 200 {object} domain.AnalyticsSummary
// @Failure 401
// @Security UserAuth
// @Router /analytics [get]
func (h *Handler) getAnalytics(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	summary, err := h.services.Analytics.Summary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("analytics summary failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, summary)
}
