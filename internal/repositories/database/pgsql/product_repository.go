package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

const productColumns = `product_id, name, description, unit_price_base, unit_price_local, stock, weight, category, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// NewProductRepository creates a new repository for inventory data.
func NewProductRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool, Audit: audit},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.UnitPriceBase,
		&p.UnitPriceLocal,
		&p.Stock,
		&p.Weight,
		&p.Category,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	start := time.Now()
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.Description,
		product.UnitPriceBase,
		product.UnitPriceLocal,
		product.Stock,
		product.Weight,
		product.Category,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	err = classifyError(err, "failed to save product "+product.ProductID)
	r.audit(ctx, domain.LogCritical, "products", domain.OpInsert, []string{product.ProductID}, "SaveProduct", start, err)
	return err
}

// UpdateProduct persists changed product fields.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	start := time.Now()
	query := `
		UPDATE products
		SET name = $2, description = $3, unit_price_base = $4, unit_price_local = $5,
			stock = $6, weight = $7, category = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.Description,
		product.UnitPriceBase,
		product.UnitPriceLocal,
		product.Stock,
		product.Weight,
		product.Category,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update product "+product.ProductID)
	r.audit(ctx, domain.LogCritical, "products", domain.OpUpdate, []string{product.ProductID}, "UpdateProduct", start, err)
	return err
}

// UpdatePrices rewrites both unit prices after a base-price change.
func (r *PgxProductRepository) UpdatePrices(ctx context.Context, productID string, priceBase, priceLocal decimal.Decimal, updatedBy string) error {
	start := time.Now()
	query := `
		UPDATE products
		SET unit_price_base = $2, unit_price_local = $3, last_updated_at = $4, last_updated_by = $5
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, productID, priceBase, priceLocal, time.Now(), updatedBy)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update prices of product "+productID)
	r.audit(ctx, domain.LogCritical, "products", domain.OpUpdate, []string{productID}, "UpdatePrices", start, err)
	return err
}

// DeleteProduct removes a product from the registry.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	start := time.Now()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to delete product "+productID)
	r.audit(ctx, domain.LogCritical, "products", domain.OpDelete, []string{productID}, "DeleteProduct", start, err)
	return err
}

// FindProductByID retrieves a single product.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, classifyError(err, "product "+productID)
	}
	return p, nil
}

// ListProducts retrieves one page of products.
func (r *PgxProductRepository) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error) {
	params, err := params.Normalize("created_at", "created_at", "name", "stock", "unit_price_base")
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products ` + params.OrderClause() + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list products")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan products")
	}

	total, err := r.countRows(ctx, params.CountStrategy, "products", "")
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Product]{Data: products, TotalCount: total}, nil
}

// SearchProducts retrieves one page of products matching the query by name,
// description or category.
func (r *PgxProductRepository) SearchProducts(ctx context.Context, search string, params pagination.Params) (*pagination.Result[domain.Product], error) {
	params, err := params.Normalize("created_at", "created_at", "name", "stock", "unit_price_base")
	if err != nil {
		return nil, err
	}

	filter := `name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1`
	pattern := "%" + search + "%"
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + filter + ` ` + params.OrderClause() + ` LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, pattern, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to search products")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan products")
	}

	// Estimated counts are table-wide; a filtered search needs an exact count
	// to be meaningful.
	strategy := params.CountStrategy
	if strategy == pagination.CountEstimated {
		strategy = pagination.CountExact
	}
	total, err := r.countRows(ctx, strategy, "products", filter, pattern)
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Product]{Data: products, TotalCount: total}, nil
}

// ListLowStock retrieves products at or below the stock threshold.
func (r *PgxProductRepository) ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= $1 ORDER BY stock ASC;`
	rows, err := r.Pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, classifyError(err, "failed to list low stock products")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan products")
	}
	return products, nil
}
