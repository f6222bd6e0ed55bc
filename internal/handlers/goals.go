package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellspringapp/wellspring/backend/internal/apierror"
	"github.com/wellspringapp/wellspring/backend/internal/logger"
	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/service"
)

// GoalsHandler handles goal and progress HTTP requests
type GoalsHandler struct {
	goalService service.GoalService
	optimizer   service.GoalOptimizer
}

// NewGoalsHandler creates a new goals handler
func NewGoalsHandler(goalService service.GoalService, optimizer service.GoalOptimizer) *GoalsHandler {
	return &GoalsHandler{goalService: goalService, optimizer: optimizer}
}

// CreateGoal creates a new goal
// POST /api/v1/goals
func (h *GoalsHandler) CreateGoal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c), err.Error(), "Please check your input and try again"))
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), uid, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to create goal", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// GetGoal returns a single goal
// GET /api/v1/goals/:id
func (h *GoalsHandler) GetGoal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	goal, err := h.goalService.GetGoal(c.Request.Context(), uid, id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get goal", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if goal == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Goal", id))
		return
	}

	c.JSON(http.StatusOK, goal)
}

// ListGoals returns the user's goals
// GET /api/v1/goals
func (h *GoalsHandler) ListGoals(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), uid)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list goals", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

// UpdateGoal applies a partial update to a goal
// PATCH /api/v1/goals/:id
func (h *GoalsHandler) UpdateGoal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c), err.Error(), "Please check your input and try again"))
		return
	}

	id := c.Param("id")
	goal, err := h.goalService.UpdateGoal(c.Request.Context(), uid, id, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to update goal", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if goal == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Goal", id))
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal removes a goal
// DELETE /api/v1/goals/:id
func (h *GoalsHandler) DeleteGoal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), uid, c.Param("id")); err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to delete goal", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.Status(http.StatusNoContent)
}

// AddProgress logs a progress sample against a goal
// POST /api/v1/goals/:id/progress
func (h *GoalsHandler) AddProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c), err.Error(), "Please check your input and try again"))
		return
	}

	id := c.Param("id")
	sample, err := h.goalService.AddProgress(c.Request.Context(), uid, id, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to add progress", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if sample == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Goal", id))
		return
	}

	c.JSON(http.StatusCreated, sample)
}

// ListProgress returns the progress samples for a goal, oldest first
// GET /api/v1/goals/:id/progress
func (h *GoalsHandler) ListProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	samples, err := h.goalService.ListProgress(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list progress", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress": samples,
		"count":    len(samples),
	})
}

// AnalyzeGoal returns derived metrics, bottlenecks, and recommendations
// GET /api/v1/goals/:id/analysis
func (h *GoalsHandler) AnalyzeGoal(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	goal, err := h.goalService.GetGoal(c.Request.Context(), uid, id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get goal", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if goal == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Goal", id))
		return
	}

	samples, err := h.goalService.ListProgress(c.Request.Context(), uid, id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list progress", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, h.optimizer.AnalyzeGoal(goal, samples))
}

// CrossGoalCorrelations returns correlations between all goal pairs with
// enough overlapping progress days
// GET /api/v1/goals/correlations
func (h *GoalsHandler) CrossGoalCorrelations(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), uid)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list goals", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	samplesByGoal := make(map[string][]models.ProgressSample, len(goals))
	for _, goal := range goals {
		samples, err := h.goalService.ListProgress(c.Request.Context(), uid, goal.ID)
		if err != nil {
			logger.Ctx(c.Request.Context()).Error("failed to list progress",
				logger.Err(err), logger.String("goal_id", goal.ID))
			apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
			return
		}
		samplesByGoal[goal.ID] = samples
	}

	correlations := h.optimizer.CrossGoalCorrelations(goals, samplesByGoal)

	c.JSON(http.StatusOK, gin.H{
		"correlations": correlations,
		"count":        len(correlations),
	})
}
