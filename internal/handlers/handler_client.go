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

// clientHandler handles HTTP requests related to the client registry.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClientByID)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

// createClient godoc
// @Summary Register a new client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Client already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create client", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClientByID godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClientByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Client '%s' not found", clientID)})
		} else {
			logger.Error("Failed to get client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Retrieves one page of clients, optionally filtered by a search query
// @Tags clients
// @Produce  json
// @Param   q query string false "Search query (name, email or phone)"
// @Param   page query int false "Page number"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.ClientResponse]
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	params := q.ToParams()

	var (
		result *pagination.Result[domain.Client]
		err    error
	)
	if search := c.Query("q"); search != "" {
		result, err = h.clientService.SearchClients(c.Request.Context(), search, params)
	} else {
		result, err = h.clientService.ListClients(c.Request.Context(), params)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToListClientResponse(result.Data), result.TotalCount, params))
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Client '%s' not found", clientID)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client; existing sales keep their weak reference
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Client '%s' not found", clientID)})
		} else {
			logger.Error("Failed to delete client", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
