package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellspringapp/wellspring/backend/internal/apierror"
	"github.com/wellspringapp/wellspring/backend/internal/logger"
	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/service"
)

// InsightsHandler handles analytics HTTP requests
type InsightsHandler struct {
	recordService service.RecordService
	analytics     service.AnalyticsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(recordService service.RecordService, analytics service.AnalyticsService) *InsightsHandler {
	return &InsightsHandler{recordService: recordService, analytics: analytics}
}

func (h *InsightsHandler) loadRecords(c *gin.Context, uid string) ([]models.WellnessRecord, bool) {
	records, err := h.recordService.ListRecords(c.Request.Context(), uid, 0, 0)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load records for analysis", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return nil, false
	}
	return records, true
}

// GetInsights returns the full analytics report for the authenticated user
// GET /api/v1/insights
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	log := logger.Ctx(c.Request.Context())
	report := h.analytics.BuildReport(records)
	log.Info("built insights report",
		logger.Int("records", len(records)),
		logger.Int("correlations", len(report.Correlations)),
		logger.Int("suggestions", len(report.Suggestions)),
	)

	c.JSON(http.StatusOK, report)
}

// GetCorrelations returns only correlation results
// GET /api/v1/insights/correlations
func (h *InsightsHandler) GetCorrelations(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correlations": h.analytics.AnalyzeCorrelations(records),
	})
}

// GetTrends returns only metric trend results
// GET /api/v1/insights/trends
func (h *InsightsHandler) GetTrends(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trends": h.analytics.AnalyzeTrends(records),
	})
}

// GetWeeklyPattern returns the detected weekday mood pattern, if any
// GET /api/v1/insights/pattern
func (h *InsightsHandler) GetWeeklyPattern(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pattern": h.analytics.DetectWeeklyPattern(records),
	})
}

// GetSuggestions returns prioritized optimization suggestions
// GET /api/v1/insights/suggestions
func (h *InsightsHandler) GetSuggestions(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": h.analytics.GenerateSuggestions(records),
	})
}

// GetMetrics returns aggregated wellness metrics
// GET /api/v1/insights/metrics
func (h *InsightsHandler) GetMetrics(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	records, ok := h.loadRecords(c, uid)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.analytics.AggregateMetrics(records))
}
