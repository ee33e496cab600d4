package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// RegisterSaleRoutes registers routes related to sales.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSaleByID)
		sales.POST("/:id/approve", h.approveSale)
		sales.POST("/:id/cancel", h.cancelSale)
		sales.DELETE("/:id", h.deleteSale)
	}
}

// createSale godoc
// @Summary Create a new sale
// @Description Creates a pending sale from a cart of line items, decrementing stock atomically
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		var stockErr *apperrors.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			logger.Warn("Sale rejected for insufficient stock",
				slog.String("product_id", stockErr.ProductID),
				slog.Int64("requested", stockErr.Requested),
				slog.Int64("available", stockErr.Available))
			c.JSON(http.StatusConflict, gin.H{
				"error":     stockErr.Error(),
				"productID": stockErr.ProductID,
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			})
		case errors.Is(err, apperrors.ErrEmptyCart), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Error("Sale rejected: no exchange rate available")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable, try again later"})
		case errors.Is(err, apperrors.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	logger.Info("Sale created successfully", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// getSaleByID godoc
// @Summary Get a sale by ID
// @Description Retrieves a sale with its line items
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSaleByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sale '%s' not found", saleID)})
		} else {
			logger.Error("Failed to get sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Retrieves one page of sales, optionally filtered by a search query
// @Tags sales
// @Produce  json
// @Param   q query string false "Search query (sale id, status or client name)"
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.SaleResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	var (
		result *pagination.Result[domain.Sale]
		err    error
	)
	if search := c.Query("q"); search != "" {
		result, err = h.saleService.SearchSales(c.Request.Context(), search, params)
	} else {
		result, err = h.saleService.ListSales(c.Request.Context(), params)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListSaleResponse(result.Data), result.TotalCount, params))
}

// approveSale godoc
// @Summary Approve a pending sale
// @Description Transitions the sale to completed and generates its receivable
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid status transition"
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id}/approve [post]
func (h *saleHandler) approveSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.saleService.ApproveSale(c.Request.Context(), saleID, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sale '%s' not found", saleID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to approve sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve sale"})
		}
		return
	}

	resp := dto.ToSaleResponse(result.Sale)
	resp.Warning = result.Warning
	c.JSON(http.StatusOK, resp)
}

// cancelSale godoc
// @Summary Cancel a pending sale
// @Description Transitions the sale to cancelled; stock stays decremented until deletion
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid status transition"
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id}/cancel [post]
func (h *saleHandler) cancelSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), saleID, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sale '%s' not found", saleID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Removes the sale, restoring stock for every line item
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sale '%s' not found", saleID)})
		} else {
			logger.Error("Failed to delete sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
