package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ClientSvcFacade exposes the client registry operations.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Client], error)
	SearchClients(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Client], error)
	DeleteClient(ctx context.Context, clientID string) error
}
