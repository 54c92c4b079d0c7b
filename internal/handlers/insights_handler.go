package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lakshmi/internal/services"
)

// InsightsHandler handles dashboard and summary requests.
type InsightsHandler struct {
	summaryService services.SummaryServicer
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(summaryService services.SummaryServicer) *InsightsHandler {
	return &InsightsHandler{summaryService: summaryService}
}

// GetDashboard returns the aggregated dashboard payload
// @Summary     Dashboard
// @Description Get headline totals, the expense category breakdown, and the monthly series
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardView "Dashboard aggregates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/dashboard [get]
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.summaryService.Dashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetAISummary returns the latest stored financial summary
// @Summary     AI summary
// @Description Get the latest periodic financial summary snapshot rendered as text
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Summary text"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No summary found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/ai-summary [get]
func (h *InsightsHandler) GetAISummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummaryText(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// RefreshSummaries recomputes every user's summary snapshot
// @Summary     Refresh all summaries
// @Description Trigger an immediate recomputation of all summary snapshots; guarded by the internal API key
// @Tags        internal
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Internal API key"
// @Success     200 {object} MessageResponse "Refresh complete"
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     409 {object} ErrorResponse "A refresh is already running"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /internal/refresh-summaries [post]
func (h *InsightsHandler) RefreshSummaries(c *gin.Context) {
	if err := h.summaryService.RefreshAll(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Summaries refreshed"})
}

// HealthCheck reports service liveness
// @Summary     Health check
// @Description Returns ok when the API is up
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string "Status"
// @Router      /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
