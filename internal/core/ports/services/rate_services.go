package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// RateSvcFacade is the injectable exchange-rate source. Workflows read
// snapshots through this interface; the refresh cycle owns the only mutable
// reference.
type RateSvcFacade interface {
	// CurrentRate returns the rate every financial write must use. When no
	// live rate is cached it falls back to the configured constant, or fails
	// with apperrors.ErrRateUnavailable when none is configured.
	CurrentRate(ctx context.Context) (decimal.Decimal, error)

	// Snapshot returns the last successful fetch, or nil if none succeeded yet.
	Snapshot() *domain.RateSnapshot

	// Refresh forces an immediate re-fetch. On failure the previous snapshot
	// stays in place (stale-but-available).
	Refresh(ctx context.Context) error
}
