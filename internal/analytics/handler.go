package analytics

import (
	"net/http"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *AnalyticsService
}

func NewAnalyticsHandler(analyticsService *AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Funnel(c *gin.Context) {
	response, err := h.analyticsService.Funnel(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	var query TrendsQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.analyticsService.Trends(c.Request.Context(), *query.StartDate, *query.EndDate)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnalyticsHandler) InterestShifts(c *gin.Context) {
	response, err := h.analyticsService.InterestShifts(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnalyticsHandler) Engagement(c *gin.Context) {
	response, err := h.analyticsService.Engagement(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
