package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
)

const userColumns = ` user_id, email, name, role, password_hash, created_at, created_by, last_updated_at, last_updated_by `

type PgxUserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool, Audit: audit}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByID retrieves a user by id.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, classifyError(err, "failed to find user by id")
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, classifyError(err, "failed to find user by email")
	}
	return user, nil
}
