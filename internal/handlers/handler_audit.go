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

// auditHandler exposes read access over the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers routes related to the audit trail.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	logs := rg.Group("/audit-logs")
	{
		logs.GET("", h.listEntries)
	}
}

// listEntries godoc
// @Summary List audit trail entries
// @Description Retrieves one page of audit entries, optionally filtered by table and operation
// @Tags audit
// @Produce  json
// @Param   table query string false "Table name filter"
// @Param   operation query string false "Operation filter (SELECT, INSERT, UPDATE, DELETE, LOGIN, ERROR)"
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.AuditEntryResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	result, err := h.auditService.ListEntries(c.Request.Context(), c.Query("table"), c.Query("operation"), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit entries"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListAuditEntryResponse(result.Data), result.TotalCount, params))
}
