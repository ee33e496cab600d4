package pagination_test

import (
	"testing"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Normalize_Defaults(t *testing.T) {
	p, err := pagination.Params{}.Normalize("created_at", "created_at", "name")
	require.NoError(t, err)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, pagination.DefaultPageSize, p.PageSize)
	assert.Equal(t, "created_at", p.OrderBy)
	assert.Equal(t, pagination.Descending, p.OrderDirection)
	assert.Equal(t, pagination.CountEstimated, p.CountStrategy)
}

func TestParams_Normalize_CapsPageSize(t *testing.T) {
	p, err := pagination.Params{PageSize: 5000}.Normalize("created_at", "created_at")
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxPageSize, p.PageSize)
}

func TestParams_Normalize_OrderColumnWhitelist(t *testing.T) {
	p, err := pagination.Params{OrderBy: "name"}.Normalize("created_at", "created_at", "name")
	require.NoError(t, err)
	assert.Equal(t, "name", p.OrderBy)

	_, err = pagination.Params{OrderBy: "name; DROP TABLE products"}.Normalize("created_at", "created_at", "name")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParams_Normalize_OrderDirection(t *testing.T) {
	p, err := pagination.Params{OrderDirection: "ASC"}.Normalize("created_at", "created_at")
	require.NoError(t, err)
	assert.Equal(t, pagination.Ascending, p.OrderDirection)

	_, err = pagination.Params{OrderDirection: "sideways"}.Normalize("created_at", "created_at")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParams_Normalize_CountStrategy(t *testing.T) {
	_, err := pagination.Params{CountStrategy: "guess"}.Normalize("created_at", "created_at")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	p, err := pagination.Params{CountStrategy: pagination.CountNone}.Normalize("created_at", "created_at")
	require.NoError(t, err)
	assert.Equal(t, pagination.CountNone, p.CountStrategy)
}

func TestParams_Offset(t *testing.T) {
	p, err := pagination.Params{Page: 3, PageSize: 25}.Normalize("created_at", "created_at")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Offset())
}

func TestParams_OrderClause(t *testing.T) {
	p, err := pagination.Params{OrderBy: "name", OrderDirection: pagination.Ascending}.Normalize("created_at", "created_at", "name")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY name ASC", p.OrderClause())
}
