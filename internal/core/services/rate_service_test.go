package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	"github.com/comerzia/comerzia_backend/internal/core/services"
	"github.com/comerzia/comerzia_backend/pkg/config"
)

const quotesPayload = `[
	{"fuente":"oficial","nombre":"Oficial","compra":36.10,"venta":36.90,"promedio":36.50,"fechaActualizacion":"2025-08-20T12:00:00Z"},
	{"fuente":"paralelo","nombre":"Paralelo","compra":51.00,"venta":53.00,"promedio":52.00,"fechaActualizacion":"2025-08-20T12:00:00Z"}
]`

type RateServiceTestSuite struct {
	suite.Suite
}

func (suite *RateServiceTestSuite) newConfig(apiURL string, fallback *decimal.Decimal) *config.Config {
	return &config.Config{
		FXAPIURL:          apiURL,
		FXRefreshInterval: time.Minute,
		FXFetchTimeout:    2 * time.Second,
		FXFallbackRate:    fallback,
	}
}

func (suite *RateServiceTestSuite) TestRefresh_CachesOfficialRate() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quotesPayload))
	}))
	defer server.Close()

	svc := services.NewRateService(suite.newConfig(server.URL, nil))
	err := svc.Refresh(context.Background())
	suite.Require().NoError(err)

	snapshot := svc.Snapshot()
	suite.Require().NotNil(snapshot)
	suite.Len(snapshot.Quotes, 2)

	rate, err := svc.CurrentRate(context.Background())
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(36.50)), "got %s", rate)
}

func (suite *RateServiceTestSuite) TestRefresh_FailureKeepsPreviousSnapshot() {
	var failing bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quotesPayload))
	}))
	defer server.Close()

	svc := services.NewRateService(suite.newConfig(server.URL, nil))
	suite.Require().NoError(svc.Refresh(context.Background()))

	failing = true
	err := svc.Refresh(context.Background())
	suite.Require().Error(err)

	// Stale data still serves reads.
	rate, err := svc.CurrentRate(context.Background())
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(36.50)))
}

func (suite *RateServiceTestSuite) TestRefresh_NoOfficialQuoteIsFailure() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"fuente":"paralelo","nombre":"Paralelo","compra":51,"venta":53,"promedio":52,"fechaActualizacion":"2025-08-20T12:00:00Z"}]`))
	}))
	defer server.Close()

	svc := services.NewRateService(suite.newConfig(server.URL, nil))
	err := svc.Refresh(context.Background())

	suite.Require().Error(err)
	suite.Nil(svc.Snapshot())
}

func (suite *RateServiceTestSuite) TestCurrentRate_FallbackWhenConfigured() {
	fallback := decimal.NewFromFloat(298.14)
	svc := services.NewRateService(suite.newConfig("http://127.0.0.1:0", &fallback))

	rate, err := svc.CurrentRate(context.Background())

	suite.Require().NoError(err)
	suite.True(rate.Equal(fallback))
}

func (suite *RateServiceTestSuite) TestCurrentRate_HardErrorWithoutFallback() {
	svc := services.NewRateService(suite.newConfig("http://127.0.0.1:0", nil))

	_, err := svc.CurrentRate(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *RateServiceTestSuite) TestOfficialRateSelection() {
	quotes := []domain.RateQuote{
		{Source: "paralelo", Average: decimal.NewFromInt(52)},
		{Source: domain.OfficialRateSource, Average: decimal.NewFromFloat(36.5)},
	}

	rate, ok := domain.OfficialRate(quotes)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromFloat(36.5)))

	_, ok = domain.OfficialRate(nil)
	suite.False(ok)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
