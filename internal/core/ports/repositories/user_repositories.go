package repositories

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// UserReader defines the read operations the auth boundary needs.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepositoryFacade is the full user repository surface.
type UserRepositoryFacade interface {
	UserReader
}
