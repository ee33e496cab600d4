package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

const clientColumns = `client_id, name, email, phone, address, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

// NewClientRepository creates a new repository for the client registry.
func NewClientRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool, Audit: audit},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()
	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// SaveClient persists a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	start := time.Now()
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	err = classifyError(err, "failed to save client "+client.ClientID)
	r.audit(ctx, domain.LogCritical, "clients", domain.OpInsert, []string{client.ClientID}, "SaveClient", start, err)
	return err
}

// UpdateClient persists changed client fields.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	start := time.Now()
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update client "+client.ClientID)
	r.audit(ctx, domain.LogCritical, "clients", domain.OpUpdate, []string{client.ClientID}, "UpdateClient", start, err)
	return err
}

// DeleteClient removes a client. Sales pointing at the client keep their
// nullable reference; there is no cascade.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	start := time.Now()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to delete client "+clientID)
	r.audit(ctx, domain.LogCritical, "clients", domain.OpDelete, []string{clientID}, "DeleteClient", start, err)
	return err
}

// FindClientByID retrieves a single client.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	c, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, classifyError(err, "client "+clientID)
	}
	return c, nil
}

// ListClients retrieves one page of clients.
func (r *PgxClientRepository) ListClients(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Client], error) {
	params, err := params.Normalize("created_at", "created_at", "name")
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients ` + params.OrderClause() + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list clients")
	}
	clients, err := collectClients(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan clients")
	}

	total, err := r.countRows(ctx, params.CountStrategy, "clients", "")
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Client]{Data: clients, TotalCount: total}, nil
}

// SearchClients retrieves one page of clients matching the query by name,
// email or phone.
func (r *PgxClientRepository) SearchClients(ctx context.Context, search string, params pagination.Params) (*pagination.Result[domain.Client], error) {
	params, err := params.Normalize("created_at", "created_at", "name")
	if err != nil {
		return nil, err
	}

	filter := `name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
	pattern := "%" + search + "%"
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + filter + ` ` + params.OrderClause() + ` LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, pattern, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to search clients")
	}
	clients, err := collectClients(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan clients")
	}

	strategy := params.CountStrategy
	if strategy == pagination.CountEstimated {
		strategy = pagination.CountExact
	}
	total, err := r.countRows(ctx, strategy, "clients", filter, pattern)
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Client]{Data: clients, TotalCount: total}, nil
}
