package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/core/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
)

// --- Mock ProductRepository (full facade) ---
type MockProductRepository struct {
	MockProductReader
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdatePrices(ctx context.Context, productID string, priceBase, priceLocal decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, productID, priceBase, priceLocal, updatedBy)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Test Suite ---
type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockProductRepository
	mockRateSvc *MockRateSvc
	service     portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.mockRateSvc = new(MockRateSvc)
	suite.service = services.NewProductService(suite.mockRepo, suite.mockRateSvc)
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_DerivesLocalPrice() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	rate := decimal.NewFromFloat(36.5)
	req := dto.CreateProductRequest{
		Name:          "Harina PAN",
		UnitPriceBase: decimal.NewFromInt(2),
		Stock:         100,
		Category:      "alimentos",
	}

	suite.mockRateSvc.On("CurrentRate", ctx).Return(rate, nil).Once()
	suite.mockRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == req.Name &&
			p.UnitPriceLocal.Equal(decimal.NewFromInt(73)) &&
			p.Stock == int64(100) &&
			p.CreatedBy == creatorUserID
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.NotEmpty(product.ProductID)
	suite.True(product.UnitPriceLocal.Equal(decimal.NewFromInt(73)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_RateUnavailable() {
	ctx := context.Background()

	suite.mockRateSvc.On("CurrentRate", ctx).Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	product, err := suite.service.CreateProduct(ctx, dto.CreateProductRequest{Name: "x", UnitPriceBase: decimal.NewFromInt(1)}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProduct")
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PriceChangeRecomputesLocal() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID:      productID,
		Name:           "Harina PAN",
		UnitPriceBase:  decimal.NewFromInt(2),
		UnitPriceLocal: decimal.NewFromInt(73),
		Stock:          100,
	}
	newPrice := decimal.NewFromInt(3)
	rate := decimal.NewFromInt(40)

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockRateSvc.On("CurrentRate", ctx).Return(rate, nil).Once()
	suite.mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.UnitPriceBase.Equal(newPrice) &&
			p.UnitPriceLocal.Equal(decimal.NewFromInt(120)) &&
			p.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{UnitPriceBase: &newPrice}, updaterUserID)

	suite.Require().NoError(err)
	suite.True(product.UnitPriceLocal.Equal(decimal.NewFromInt(120)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NonPriceEditSkipsRateLookup() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{
		ProductID:      productID,
		Name:           "Old name",
		UnitPriceBase:  decimal.NewFromInt(2),
		UnitPriceLocal: decimal.NewFromInt(73),
	}
	newName := "New name"

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Name == newName && p.UnitPriceLocal.Equal(decimal.NewFromInt(73))
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Name: &newName}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, product.Name)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "CurrentRate")
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestListLowStock_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListLowStock", ctx, int64(5)).Return([]domain.Product(nil), nil).Once()

	products, err := suite.service.ListLowStock(ctx, 5)

	suite.Require().NoError(err)
	suite.NotNil(products)
	suite.Empty(products)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
