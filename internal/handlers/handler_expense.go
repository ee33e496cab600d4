package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
)

// expenseHandler handles HTTP requests related to business expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/period", h.listExpensesByPeriod)
		expenses.GET("/:id", h.getExpenseByID)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// createExpense godoc
// @Summary Register a business expense
// @Description Records an expense in both currencies at the current official rate
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable, try again later"})
		default:
			logger.Error("Failed to create expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpenseByID godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpenseByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Expense '%s' not found", expenseID)})
		} else {
			logger.Error("Failed to get expense", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce  json
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.ExpenseResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list expenses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListExpenseResponse(result.Data), result.TotalCount, params))
}

// listExpensesByPeriod godoc
// @Summary List expenses within a date range
// @Description Retrieves expenses with expense dates in [from, to), optionally filtered by category
// @Tags expenses
// @Produce  json
// @Param   from query string true "Range start (RFC 3339)"
// @Param   to query string true "Range end (RFC 3339)"
// @Param   category query string false "Category filter"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Security BearerAuth
// @Router /expenses/period [get]
func (h *expenseHandler) listExpensesByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected RFC 3339"})
		return
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must be after 'from'"})
		return
	}

	expenses, err := h.expenseService.ListExpensesByPeriod(c.Request.Context(), from, to, c.Query("category"))
	if err != nil {
		logger.Error("Failed to list expenses by period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

// updateExpense godoc
// @Summary Update an expense's descriptive fields
// @Description Amounts and the applied rate are frozen at creation and cannot be edited
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Expense '%s' not found", expenseID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update expense", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("id")

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Expense '%s' not found", expenseID)})
		} else {
			logger.Error("Failed to delete expense", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
