package repositories

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// ClientReader defines read operations for the client registry.
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Client], error)
	SearchClients(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Client], error)
}

// ClientWriter defines write operations for the client registry.
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
