package dto

import (
	"time"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateClientRequest defines the updatable client fields.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to a response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to response DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
