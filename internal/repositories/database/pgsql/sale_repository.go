package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

const saleColumns = `s.sale_id, s.client_id, s.total_base, s.total_local, s.rate_applied, s.status, s.sale_date, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by`

type PgxSaleRepository struct {
	BaseRepository
}

// NewSaleRepository creates a new repository for sale data.
func NewSaleRepository(pool PgxPool, audit portsrepo.AuditLogWriter) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool, Audit: audit},
	}
}

var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

// CreateSale persists the sale header, its line items and the stock
// decrements inside one database transaction. The stock decrement is a
// conditional update guarded by `stock >= quantity`: a zero rows-affected
// result means the stock moved since the cart was validated, and the whole
// transaction rolls back. Nothing is ever left behind on failure.
func (r *PgxSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) error {
	start := time.Now()
	err := r.createSaleTx(ctx, sale)
	r.audit(ctx, domain.LogCritical, "sales", domain.OpInsert, []string{sale.SaleID}, "CreateSale", start, err)
	return err
}

func (r *PgxSaleRepository) createSaleTx(ctx context.Context, sale domain.Sale) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction commits.
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO sales (sale_id, client_id, total_base, total_local, rate_applied, status, sale_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		sale.SaleID,
		sale.ClientID,
		sale.TotalBase,
		sale.TotalLocal,
		sale.RateApplied,
		sale.Status,
		sale.SaleDate,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return classifyError(err, "failed to insert sale "+sale.SaleID)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_item_id, sale_id, product_id, quantity, unit_price_base, unit_price_local, subtotal_base, subtotal_local)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, item := range sale.Items {
		batch.Queue(itemQuery,
			item.SaleItemID,
			item.SaleID,
			item.ProductID,
			item.Quantity,
			item.UnitPriceBase,
			item.UnitPriceLocal,
			item.SubtotalBase,
			item.SubtotalLocal,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return classifyError(err, "failed to insert line items for sale "+sale.SaleID)
	}

	// Decrement stock per distinct product with a compare-and-swap condition.
	// Two concurrent sales of the last unit cannot both pass: the second
	// update affects zero rows and its transaction rolls back.
	cart := domain.Cart{Items: sale.Items}
	productOrder, quantities := cart.QuantityByProduct()
	decrementQuery := `UPDATE products SET stock = stock - $2 WHERE product_id = $1 AND stock >= $2;`
	for _, productID := range productOrder {
		qty := quantities[productID]
		tag, err := tx.Exec(ctx, decrementQuery, productID, qty)
		if err != nil {
			return classifyError(err, "failed to decrement stock of product "+productID)
		}
		if tag.RowsAffected() == 0 {
			available, lookErr := currentStock(ctx, tx, productID)
			if lookErr != nil {
				return lookErr
			}
			return &apperrors.InsufficientStockError{
				ProductID: productID,
				Requested: qty,
				Available: available,
			}
		}
	}

	return r.Commit(ctx, tx)
}

// currentStock reads a product's stock within the transaction, for error
// reporting after a failed conditional decrement.
func currentStock(ctx context.Context, tx pgx.Tx, productID string) (int64, error) {
	var stock int64
	err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE product_id = $1;`, productID).Scan(&stock)
	if err != nil {
		return 0, classifyError(err, "product "+productID)
	}
	return stock, nil
}

// UpdateSaleStatus transitions the sale's status.
func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string) error {
	start := time.Now()
	query := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, saleID, status, time.Now(), updatedBy)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	err = classifyError(err, "failed to update status of sale "+saleID)
	r.audit(ctx, domain.LogCritical, "sales", domain.OpUpdate, []string{saleID}, "UpdateSaleStatus "+string(status), start, err)
	return err
}

// DeleteSale restores stock for every line item, then removes items and
// header, all inside one transaction. Restores mirror the creation-time
// decrements in reverse order.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	start := time.Now()
	err := r.deleteSaleTx(ctx, saleID)
	r.audit(ctx, domain.LogCritical, "sales", domain.OpDelete, []string{saleID}, "DeleteSale", start, err)
	return err
}

func (r *PgxSaleRepository) deleteSaleTx(ctx context.Context, saleID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `SELECT product_id, quantity FROM sale_items WHERE sale_id = $1;`, saleID)
	if err != nil {
		return classifyError(err, "failed to read line items of sale "+saleID)
	}
	type lineQty struct {
		productID string
		quantity  int64
	}
	var lines []lineQty
	for rows.Next() {
		var l lineQty
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return classifyError(err, "failed to scan line items of sale "+saleID)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return classifyError(err, "failed to read line items of sale "+saleID)
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE product_id = $1;`, l.productID, l.quantity); err != nil {
			return classifyError(err, "failed to restore stock of product "+l.productID)
		}
	}

	// A completed sale carries a receivable keyed on sale_id; it has to go
	// before the header or the foreign key blocks the delete.
	if _, err := tx.Exec(ctx, `DELETE FROM receivables WHERE sale_id = $1;`, saleID); err != nil {
		return classifyError(err, "failed to delete receivable of sale "+saleID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1;`, saleID); err != nil {
		return classifyError(err, "failed to delete line items of sale "+saleID)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return classifyError(err, "failed to delete sale "+saleID)
	}
	if tag.RowsAffected() == 0 {
		return classifyError(pgx.ErrNoRows, "sale "+saleID)
	}

	return r.Commit(ctx, tx)
}

// FindSaleByID retrieves a sale with its line items and client name.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `, COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN clients c ON c.client_id = s.client_id
		WHERE s.sale_id = $1;
	`
	sale, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		return nil, classifyError(err, "sale "+saleID)
	}

	itemsQuery := `
		SELECT sale_item_id, sale_id, product_id, quantity, unit_price_base, unit_price_local, subtotal_base, subtotal_local
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY sale_item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, saleID)
	if err != nil {
		return nil, classifyError(err, "failed to read line items of sale "+saleID)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.SaleItem
		err := rows.Scan(
			&item.SaleItemID,
			&item.SaleID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPriceBase,
			&item.UnitPriceLocal,
			&item.SubtotalBase,
			&item.SubtotalLocal,
		)
		if err != nil {
			return nil, classifyError(err, "failed to scan line items of sale "+saleID)
		}
		sale.Items = append(sale.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "failed to read line items of sale "+saleID)
	}

	return sale, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.SaleID,
		&s.ClientID,
		&s.TotalBase,
		&s.TotalLocal,
		&s.RateApplied,
		&s.Status,
		&s.SaleDate,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
		&s.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]domain.Sale, error) {
	defer rows.Close()
	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *s)
	}
	return sales, rows.Err()
}

// ListSales retrieves one page of sale headers with the client name joined.
func (r *PgxSaleRepository) ListSales(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	params, err := params.Normalize("s.sale_date", "s.sale_date", "s.created_at", "s.total_base", "s.status")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + saleColumns + `, COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN clients c ON c.client_id = s.client_id
		` + params.OrderClause() + ` LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to list sales")
	}
	sales, err := collectSales(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan sales")
	}

	total, err := r.countRows(ctx, params.CountStrategy, "sales", "")
	if err != nil {
		return nil, err
	}
	return &pagination.Result[domain.Sale]{Data: sales, TotalCount: total}, nil
}

// SearchSales retrieves one page of sales whose id, status or client name
// matches the query.
func (r *PgxSaleRepository) SearchSales(ctx context.Context, search string, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	params, err := params.Normalize("s.sale_date", "s.sale_date", "s.created_at", "s.total_base", "s.status")
	if err != nil {
		return nil, err
	}

	pattern := "%" + search + "%"
	query := `
		SELECT ` + saleColumns + `, COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN clients c ON c.client_id = s.client_id
		WHERE s.sale_id::text ILIKE $1 OR s.status ILIKE $1 OR c.name ILIKE $1
		` + params.OrderClause() + ` LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, pattern, params.PageSize, params.Offset())
	if err != nil {
		return nil, classifyError(err, "failed to search sales")
	}
	sales, err := collectSales(rows)
	if err != nil {
		return nil, classifyError(err, "failed to scan sales")
	}

	strategy := params.CountStrategy
	if strategy == pagination.CountEstimated {
		strategy = pagination.CountNone
	}
	total := int64(0)
	if strategy == pagination.CountExact {
		countQuery := `
			SELECT COUNT(*)
			FROM sales s
			LEFT JOIN clients c ON c.client_id = s.client_id
			WHERE s.sale_id::text ILIKE $1 OR s.status ILIKE $1 OR c.name ILIKE $1;
		`
		if err := r.Pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
			return nil, classifyError(err, "failed to count sales")
		}
	}
	return &pagination.Result[domain.Sale]{Data: sales, TotalCount: total}, nil
}
