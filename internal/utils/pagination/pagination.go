// Package pagination provides the uniform page/limit request shape used by
// every listing repository, including the row-count strategy trade-off.
package pagination

import (
	"fmt"
	"strings"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
)

// CountStrategy selects how (or whether) the total row count is computed for
// a page. Exact counts scan; estimated counts read planner statistics; none
// skips counting entirely and reports zero.
type CountStrategy string

const (
	CountExact     CountStrategy = "exact"
	CountEstimated CountStrategy = "estimated"
	CountNone      CountStrategy = "none"
)

// Direction is the SQL ordering direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params describes one page request. Page is 1-indexed.
type Params struct {
	Page           int
	PageSize       int
	OrderBy        string
	OrderDirection Direction
	CountStrategy  CountStrategy
}

// Normalize fills defaults and validates the order column against the
// caller's whitelist. Order columns are interpolated into SQL, so anything
// not whitelisted is rejected outright.
func (p Params) Normalize(defaultOrderBy string, allowedOrderBy ...string) (Params, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.OrderBy == "" {
		p.OrderBy = defaultOrderBy
	} else {
		ok := false
		for _, col := range allowedOrderBy {
			if p.OrderBy == col {
				ok = true
				break
			}
		}
		if !ok {
			return p, fmt.Errorf("%w: cannot order by column %q", apperrors.ErrValidation, p.OrderBy)
		}
	}
	switch strings.ToLower(string(p.OrderDirection)) {
	case "", string(Descending):
		p.OrderDirection = Descending
	case string(Ascending):
		p.OrderDirection = Ascending
	default:
		return p, fmt.Errorf("%w: invalid order direction %q", apperrors.ErrValidation, p.OrderDirection)
	}
	if p.CountStrategy == "" {
		p.CountStrategy = CountEstimated
	}
	switch p.CountStrategy {
	case CountExact, CountEstimated, CountNone:
	default:
		return p, fmt.Errorf("%w: invalid count strategy %q", apperrors.ErrValidation, p.CountStrategy)
	}
	return p, nil
}

// Offset returns the zero-based row offset for the page window
// [Offset, Offset+PageSize).
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause renders the ORDER BY fragment. Only call after Normalize.
func (p Params) OrderClause() string {
	dir := "DESC"
	if p.OrderDirection == Ascending {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", p.OrderBy, dir)
}

// Result is one page of rows plus the total count. When the strategy is none
// the count is zero; callers must not treat a zero count as "no rows" unless
// Data is also empty.
type Result[T any] struct {
	Data       []T
	TotalCount int64
}
