package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// defaultLowStockThreshold applies when the query omits the threshold.
const defaultLowStockThreshold = 5

// productHandler handles HTTP requests related to inventory.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers routes related to products.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/low-stock", h.listLowStock)
		products.GET("/:id", h.getProductByID)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}
}

// createProduct godoc
// @Summary Register a new product
// @Description Adds a product; the local price is derived at the current official rate
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable, try again later"})
		default:
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProductByID godoc
// @Summary Get a product by ID
// @Tags products
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *productHandler) getProductByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product '%s' not found", productID)})
		} else {
			logger.Error("Failed to get product", slog.String("product_id", productID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Description Retrieves one page of products, optionally filtered by a search query
// @Tags products
// @Produce  json
// @Param   q query string false "Search query (name, description or category)"
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.ProductResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	var (
		result *pagination.Result[domain.Product]
		err    error
	)
	if search := c.Query("q"); search != "" {
		result, err = h.productService.SearchProducts(c.Request.Context(), search, params)
	} else {
		result, err = h.productService.ListProducts(c.Request.Context(), params)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListProductResponse(result.Data), result.TotalCount, params))
}

// listLowStock godoc
// @Summary List products at or below a stock threshold
// @Tags products
// @Produce  json
// @Param   threshold query int false "Stock threshold" default(5)
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid threshold"
// @Security BearerAuth
// @Router /products/low-stock [get]
func (h *productHandler) listLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	threshold := int64(defaultLowStockThreshold)
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold must be a non-negative integer"})
			return
		}
		threshold = parsed
	}

	products, err := h.productService.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		logger.Error("Failed to list low stock products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list low stock products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

// updateProduct godoc
// @Summary Update a product
// @Description Applies the provided fields; a base-price change recomputes the local price
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product '%s' not found", productID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable, try again later"})
		default:
			logger.Error("Failed to update product", slog.String("product_id", productID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product '%s' not found", productID)})
		} else {
			logger.Error("Failed to delete product", slog.String("product_id", productID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
