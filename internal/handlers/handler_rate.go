package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/middleware"
)

// rateHandler exposes the cached FX snapshot.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getSnapshot)
		rates.POST("/refresh", h.refresh)
	}
}

// getSnapshot godoc
// @Summary Get the cached exchange-rate snapshot
// @Description Returns all cached quotes plus the official rate used for conversions
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 503 {object} map[string]string "No snapshot available yet"
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) getSnapshot(c *gin.Context) {
	snapshot := h.rateService.Snapshot()
	if snapshot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No exchange rate snapshot available yet"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snapshot))
}

// refresh godoc
// @Summary Force an immediate exchange-rate refresh
// @Description Re-fetches quotes now; on failure the previous snapshot stays in place
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 502 {object} map[string]string "Quote endpoint unreachable"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *rateHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateService.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable"})
			return
		}
		logger.Warn("Manual rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh exchange rates: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(h.rateService.Snapshot()))
}
