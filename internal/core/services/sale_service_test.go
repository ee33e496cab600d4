package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/core/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Sale]), args.Error(1)
}

func (m *MockSaleRepository) SearchSales(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Sale], error) {
	args := m.Called(ctx, query, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Sale]), args.Error(1)
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string) error {
	args := m.Called(ctx, saleID, status, updatedBy)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// --- Mock ProductReader ---
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductReader) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Product]), args.Error(1)
}

func (m *MockProductReader) SearchProducts(ctx context.Context, query string, params pagination.Params) (*pagination.Result[domain.Product], error) {
	args := m.Called(ctx, query, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Product]), args.Error(1)
}

func (m *MockProductReader) ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock RateSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSvc) Snapshot() *domain.RateSnapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.RateSnapshot)
}

func (m *MockRateSvc) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock ReceivableSvc ---
type MockReceivableSvc struct {
	mock.Mock
}

func (m *MockReceivableSvc) CreateFromSale(ctx context.Context, sale *domain.Sale, creatorUserID string) (*domain.Receivable, error) {
	args := m.Called(ctx, sale, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Receivable]), args.Error(1)
}

func (m *MockReceivableSvc) ListPending(ctx context.Context) ([]domain.Receivable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest, updaterUserID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) RegisterPayment(ctx context.Context, receivableID string, amountBase decimal.Decimal, updaterUserID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, amountBase, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) MarkPaid(ctx context.Context, receivableID string, updaterUserID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableSvc) DeleteReceivable(ctx context.Context, receivableID string) error {
	args := m.Called(ctx, receivableID)
	return args.Error(0)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo      *MockSaleRepository
	mockProductReader *MockProductReader
	mockRateSvc       *MockRateSvc
	mockReceivableSvc *MockReceivableSvc
	service           portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProductReader = new(MockProductReader)
	suite.mockRateSvc = new(MockRateSvc)
	suite.mockReceivableSvc = new(MockReceivableSvc)
	suite.service = services.NewSaleService(suite.mockSaleRepo, suite.mockProductReader, suite.mockRateSvc, suite.mockReceivableSvc)
}

func testProduct(id string, priceBase string, stock int64) *domain.Product {
	price, _ := decimal.NewFromString(priceBase)
	return &domain.Product{
		ProductID:      id,
		Name:           "Product " + id,
		UnitPriceBase:  price,
		UnitPriceLocal: price.Mul(decimal.NewFromInt(36)),
		Stock:          stock,
	}
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	rate := decimal.NewFromInt(40)

	req := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-a", Quantity: 3},
			{ProductID: "prod-b", Quantity: 1},
		},
	}

	suite.mockProductReader.On("FindProductByID", ctx, "prod-a").Return(testProduct("prod-a", "10", 5), nil).Once()
	suite.mockProductReader.On("FindProductByID", ctx, "prod-b").Return(testProduct("prod-b", "25", 2), nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx).Return(rate, nil).Once()
	suite.mockSaleRepo.On("CreateSale", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.Status == domain.SalePending &&
			len(s.Items) == 2 &&
			s.TotalBase.Equal(decimal.NewFromInt(55)) &&
			s.TotalLocal.Equal(decimal.NewFromInt(2200)) &&
			s.RateApplied.Equal(rate) &&
			s.CreatedBy == creatorUserID
	})).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(domain.SalePending, sale.Status)
	suite.True(sale.TotalBase.Equal(decimal.NewFromInt(55)))
	suite.True(sale.TotalLocal.Equal(decimal.NewFromInt(2200)))
	// Line items are repriced at the applied rate, not the stale product price.
	suite.True(sale.Items[0].UnitPriceLocal.Equal(decimal.NewFromInt(400)))
	suite.NotEmpty(sale.Items[0].SaleItemID)
	suite.Equal(sale.SaleID, sale.Items[0].SaleID)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockProductReader.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_EmptyCart() {
	ctx := context.Background()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrEmptyCart)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_MissingActor() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 1}},
	}

	sale, err := suite.service.CreateSale(ctx, req, "")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 10}},
	}

	suite.mockProductReader.On("FindProductByID", ctx, "prod-a").Return(testProduct("prod-a", "10", 4), nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal("prod-a", stockErr.ProductID)
	suite.Equal(int64(10), stockErr.Requested)
	suite.Equal(int64(4), stockErr.Available)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownProduct() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "ghost", Quantity: 1}},
	}

	suite.mockProductReader.On("FindProductByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_RateUnavailable() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-a", Quantity: 1}},
	}

	suite.mockProductReader.On("FindProductByID", ctx, "prod-a").Return(testProduct("prod-a", "10", 5), nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx).Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	sale, err := suite.service.CreateSale(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestApproveSale_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:     saleID,
		Status:     domain.SalePending,
		TotalBase:  decimal.NewFromInt(55),
		TotalLocal: decimal.NewFromInt(2200),
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.SaleCompleted, updaterUserID).Return(nil).Once()
	suite.mockReceivableSvc.On("CreateFromSale", ctx, mock.AnythingOfType("*domain.Sale"), updaterUserID).
		Return(&domain.Receivable{SaleID: saleID}, nil).Once()

	result, err := suite.service.ApproveSale(ctx, saleID, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.SaleCompleted, result.Sale.Status)
	suite.Empty(result.Warning)
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockReceivableSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestApproveSale_ReceivableFailureYieldsWarning() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePending}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.SaleCompleted, updaterUserID).Return(nil).Once()
	suite.mockReceivableSvc.On("CreateFromSale", ctx, mock.AnythingOfType("*domain.Sale"), updaterUserID).
		Return(nil, assert.AnError).Once()

	result, err := suite.service.ApproveSale(ctx, saleID, updaterUserID)

	// The completion stands; the failed receivable surfaces as a warning.
	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.SaleCompleted, result.Sale.Status)
	suite.NotEmpty(result.Warning)
	suite.mockReceivableSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestApproveSale_InvalidTransition() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SaleCancelled}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	result, err := suite.service.ApproveSale(ctx, saleID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "UpdateSaleStatus")
}

func (suite *SaleServiceTestSuite) TestCancelSale_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePending}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.SaleCancelled, updaterUserID).Return(nil).Once()

	cancelled, err := suite.service.CancelSale(ctx, saleID, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleCancelled, cancelled.Status)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_Delegates() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("DeleteSale", ctx, saleID).Return(nil).Once()

	err := suite.service.DeleteSale(ctx, saleID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
