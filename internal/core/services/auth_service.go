package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/internal/utils"
	"github.com/comerzia/comerzia_backend/pkg/config"
)

// authService resolves credentials into signed tokens. Login attempts are
// recorded in the audit trail with the user id on success and the email on
// failure.
type authService struct {
	userRepo  portsrepo.UserReader
	auditRepo portsrepo.AuditLogWriter
	cfg       *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserReader, auditRepo portsrepo.AuditLogWriter, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, auditRepo: auditRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns a signed JWT plus the user. An
// unknown email and a wrong password return the same error so responses do
// not reveal which emails exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordLoginAttempt(ctx, email, false)
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.recordLoginAttempt(ctx, email, false)
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sign token", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.recordLoginAttempt(ctx, user.UserID, true)
	return token, user, nil
}

func (s *authService) recordLoginAttempt(ctx context.Context, subject string, ok bool) {
	entry := domain.AuditEntry{
		Timestamp: time.Now(),
		TableName: "users",
		Operation: domain.OpLogin,
	}
	if ok {
		entry.UserID = subject
	} else {
		entry.ErrorMessage = "login failed for " + subject
	}
	s.auditRepo.Append(ctx, entry)
}
