package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/middleware"
	"github.com/comerzia/comerzia_backend/pkg/config"
)

// rateService caches exchange quotes fetched from the external FX endpoint.
// The snapshot is replaced wholesale under the mutex; readers never see a
// partially updated quote list.
type rateService struct {
	client   *resty.Client
	apiURL   string
	fallback *decimal.Decimal
	interval time.Duration

	mu       sync.RWMutex
	snapshot *domain.RateSnapshot
}

// NewRateService creates the exchange-rate service. Call Start to begin the
// periodic refresh cycle.
func NewRateService(cfg *config.Config) *rateService {
	client := resty.New().
		SetTimeout(cfg.FXFetchTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &rateService{
		client:   client,
		apiURL:   cfg.FXAPIURL,
		fallback: cfg.FXFallbackRate,
		interval: cfg.FXRefreshInterval,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Start launches the refresh loop: one immediate fetch, then one per interval
// until the context is cancelled. Fetch failures leave the previous snapshot
// in place.
func (s *rateService) Start(ctx context.Context) {
	go func() {
		if err := s.Refresh(ctx); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Initial rate fetch failed", slog.String("error", err.Error()))
		}
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					middleware.GetLoggerFromCtx(ctx).Warn("Rate refresh failed, keeping previous snapshot", slog.String("error", err.Error()))
				}
			}
		}
	}()
}

// Refresh fetches the quote list and replaces the cached snapshot. A payload
// without an official quote counts as a failure: a snapshot that cannot price
// anything is worse than a stale one that can.
func (s *rateService) Refresh(ctx context.Context) error {
	var quotes []domain.RateQuote
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&quotes).
		Get(s.apiURL)
	if err != nil {
		return fmt.Errorf("failed to fetch exchange quotes: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("exchange quote endpoint returned %s", resp.Status())
	}
	if _, ok := domain.OfficialRate(quotes); !ok {
		return fmt.Errorf("exchange quote payload has no %q quote", domain.OfficialRateSource)
	}

	s.mu.Lock()
	s.snapshot = &domain.RateSnapshot{Quotes: quotes, FetchedAt: time.Now()}
	s.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Exchange quotes refreshed", slog.Int("quotes", len(quotes)))
	return nil
}

// Snapshot returns the last successful fetch, or nil if none succeeded yet.
func (s *rateService) Snapshot() *domain.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// CurrentRate returns the official rate from the cached snapshot. With no
// snapshot it falls back to the configured constant; without one it fails with
// apperrors.ErrRateUnavailable so financial writes cannot silently misprice.
func (s *rateService) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	if snapshot != nil {
		if rate, ok := domain.OfficialRate(snapshot.Quotes); ok {
			return rate, nil
		}
	}
	if s.fallback != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("No live exchange rate, using configured fallback",
			slog.String("fallback", s.fallback.String()))
		return *s.fallback, nil
	}
	return decimal.Zero, apperrors.ErrRateUnavailable
}
