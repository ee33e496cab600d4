package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
)

// receivableHandler handles HTTP requests related to collections.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

func newReceivableHandler(rs portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{receivableService: rs}
}

// registerReceivableRoutes registers routes related to receivables.
func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)

	receivables := rg.Group("/receivables")
	{
		receivables.GET("", h.listReceivables)
		receivables.GET("/pending", h.listPending)
		receivables.GET("/:id", h.getReceivableByID)
		receivables.PUT("/:id", h.updateReceivable)
		receivables.POST("/:id/payments", h.registerPayment)
		receivables.POST("/:id/mark-paid", h.markPaid)
		receivables.DELETE("/:id", h.deleteReceivable)
	}
}

// getReceivableByID godoc
// @Summary Get a receivable by ID
// @Tags receivables
// @Produce  json
// @Param   id path string true "Receivable ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} map[string]string "Receivable not found"
// @Security BearerAuth
// @Router /receivables/{id} [get]
func (h *receivableHandler) getReceivableByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	receivable, err := h.receivableService.GetReceivableByID(c.Request.Context(), receivableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Receivable '%s' not found", receivableID)})
		} else {
			logger.Error("Failed to get receivable", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receivable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// listReceivables godoc
// @Summary List receivables
// @Tags receivables
// @Produce  json
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.ReceivableResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /receivables [get]
func (h *receivableHandler) listReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	result, err := h.receivableService.ListReceivables(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list receivables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receivables"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListReceivableResponse(result.Data), result.TotalCount, params))
}

// listPending godoc
// @Summary List open receivables ordered by due date
// @Tags receivables
// @Produce  json
// @Success 200 {array} dto.ReceivableResponse
// @Security BearerAuth
// @Router /receivables/pending [get]
func (h *receivableHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receivables, err := h.receivableService.ListPending(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending receivables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending receivables"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceivableResponse(receivables))
}

// updateReceivable godoc
// @Summary Update a receivable's due date or notes
// @Tags receivables
// @Accept  json
// @Produce  json
// @Param   id path string true "Receivable ID"
// @Param   receivable body dto.UpdateReceivableRequest true "Fields to update"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} map[string]string "Receivable not found"
// @Security BearerAuth
// @Router /receivables/{id} [put]
func (h *receivableHandler) updateReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	var req dto.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.UpdateReceivable(c.Request.Context(), receivableID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Receivable '%s' not found", receivableID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update receivable", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receivable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// registerPayment godoc
// @Summary Apply a payment to a receivable
// @Description Decreases the pending amounts; reaching zero forces the status to paid
// @Tags receivables
// @Accept  json
// @Produce  json
// @Param   id path string true "Receivable ID"
// @Param   payment body dto.RegisterPaymentRequest true "Payment amount in base currency"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} map[string]string "Invalid or excessive payment"
// @Failure 404 {object} map[string]string "Receivable not found"
// @Security BearerAuth
// @Router /receivables/{id}/payments [post]
func (h *receivableHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.RegisterPayment(c.Request.Context(), receivableID, req.AmountBase, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Receivable '%s' not found", receivableID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to register payment", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// markPaid godoc
// @Summary Mark a receivable as fully paid
// @Tags receivables
// @Produce  json
// @Param   id path string true "Receivable ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} map[string]string "Receivable not found"
// @Security BearerAuth
// @Router /receivables/{id}/mark-paid [post]
func (h *receivableHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.MarkPaid(c.Request.Context(), receivableID, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Receivable '%s' not found", receivableID)})
		} else {
			logger.Error("Failed to mark receivable paid", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark receivable paid"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// deleteReceivable godoc
// @Summary Delete a receivable
// @Tags receivables
// @Produce  json
// @Param   id path string true "Receivable ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Receivable not found"
// @Security BearerAuth
// @Router /receivables/{id} [delete]
func (h *receivableHandler) deleteReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	if err := h.receivableService.DeleteReceivable(c.Request.Context(), receivableID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Receivable '%s' not found", receivableID)})
		} else {
			logger.Error("Failed to delete receivable", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete receivable"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
