package services

import (
	"context"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// AuthSvcFacade resolves credentials into a signed token. Everything else
// about identity lives outside the core.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
