package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wellspringapp/wellspring/backend/internal/apierror"
	"github.com/wellspringapp/wellspring/backend/internal/logger"
	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/service"
)

// RecordsHandler handles wellness record HTTP requests
type RecordsHandler struct {
	recordService service.RecordService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(recordService service.RecordService) *RecordsHandler {
	return &RecordsHandler{recordService: recordService}
}

// userID pulls the authenticated user from the gin context. Auth middleware
// guarantees it is set on protected routes.
func userID(c *gin.Context) (string, bool) {
	id, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return id.(string), true
}

// CreateRecord logs a new wellness entry
// POST /api/v1/records
func (h *RecordsHandler) CreateRecord(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c), err.Error(), "Please check your input and try again"))
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), uid, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to create record", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetRecord returns a single wellness entry
// GET /api/v1/records/:id
func (h *RecordsHandler) GetRecord(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	record, err := h.recordService.GetRecord(c.Request.Context(), uid, id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get record", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if record == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Record", id))
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListRecords returns the user's wellness entries, oldest first
// GET /api/v1/records
func (h *RecordsHandler) ListRecords(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.recordService.ListRecords(c.Request.Context(), uid, limit, offset)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list records", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// UpdateRecord applies a partial update to a wellness entry
// PATCH /api/v1/records/:id
func (h *RecordsHandler) UpdateRecord(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c), err.Error(), "Please check your input and try again"))
		return
	}

	id := c.Param("id")
	record, err := h.recordService.UpdateRecord(c.Request.Context(), uid, id, &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to update record", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if record == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Record", id))
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteRecord removes a wellness entry
// DELETE /api/v1/records/:id
func (h *RecordsHandler) DeleteRecord(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), uid, c.Param("id")); err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to delete record", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.Status(http.StatusNoContent)
}
