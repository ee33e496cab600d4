package pgsql_test

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/repositories/database/pgsql"
)

const testSaleID = "6f1c2a1e-8a3b-4f2d-9d58-0c1f55aa9b01"

// Deleting an approved sale must remove its receivable inside the same
// transaction, before the header delete, or the foreign key on
// receivables.sale_id blocks the whole thing and the stock restore is rolled
// back with it. Expectations are ordered, so this pins the statement order.
func TestDeleteSale_RemovesReceivableBeforeHeader(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := pgsql.NewSaleRepository(mock, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id, quantity FROM sale_items`).
		WithArgs(testSaleID).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity"}).
			AddRow("p1", int64(3)).
			AddRow("p2", int64(1)))
	mock.ExpectExec(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs("p1", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs("p2", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM receivables WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM sale_items WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM sales WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteSale(context.Background(), testSaleID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSale_UnknownSale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := pgsql.NewSaleRepository(mock, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id, quantity FROM sale_items`).
		WithArgs(testSaleID).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity"}))
	mock.ExpectExec(`DELETE FROM receivables WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM sale_items WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM sales WHERE sale_id = \$1`).
		WithArgs(testSaleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err = repo.DeleteSale(context.Background(), testSaleID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
