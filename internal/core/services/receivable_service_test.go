package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/comerzia/comerzia_backend/internal/apperrors"
	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/core/services"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// --- Mock ReceivableRepository ---
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivableBySaleID(ctx context.Context, saleID string) (*domain.Receivable, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Receivable], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Result[domain.Receivable]), args.Error(1)
}

func (m *MockReceivableRepository) ListPendingReceivables(ctx context.Context) ([]domain.Receivable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) UpdatePendingAmounts(ctx context.Context, receivableID string, pendingBase, pendingLocal decimal.Decimal, status domain.ReceivableStatus, updatedBy string) error {
	args := m.Called(ctx, receivableID, pendingBase, pendingLocal, status, updatedBy)
	return args.Error(0)
}

func (m *MockReceivableRepository) DeleteReceivable(ctx context.Context, receivableID string) error {
	args := m.Called(ctx, receivableID)
	return args.Error(0)
}

// --- Test Suite ---
type ReceivableServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReceivableRepository
	service  portssvc.ReceivableSvcFacade
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReceivableRepository)
	suite.service = services.NewReceivableService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ReceivableServiceTestSuite) TestCreateFromSale_MirrorsTotals() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:     uuid.NewString(),
		TotalBase:  decimal.NewFromInt(55),
		TotalLocal: decimal.NewFromInt(2200),
		Status:     domain.SaleCompleted,
	}

	suite.mockRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.SaleID == sale.SaleID &&
			r.PendingAmountBase.Equal(sale.TotalBase) &&
			r.PendingAmountLocal.Equal(sale.TotalLocal) &&
			r.Status == domain.ReceivablePending &&
			r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	receivable, err := suite.service.CreateFromSale(ctx, sale, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(receivable)
	suite.NotEmpty(receivable.ReceivableID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateFromSale_DuplicateSale() {
	ctx := context.Background()
	sale := &domain.Sale{SaleID: uuid.NewString()}

	suite.mockRepo.On("SaveReceivable", ctx, mock.AnythingOfType("domain.Receivable")).
		Return(apperrors.ErrDuplicate).Once()

	receivable, err := suite.service.CreateFromSale(ctx, sale, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ReceivableServiceTestSuite) TestCreateFromSale_NoSale() {
	receivable, err := suite.service.CreateFromSale(context.Background(), nil, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReceivableServiceTestSuite) TestRegisterPayment_Partial() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{
		ReceivableID:       receivableID,
		PendingAmountBase:  decimal.NewFromInt(100),
		PendingAmountLocal: decimal.NewFromInt(4000),
		Status:             domain.ReceivablePending,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePendingAmounts", ctx, receivableID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(60)) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(2400)) }),
		domain.ReceivablePartial, updaterUserID).Return(nil).Once()

	updated, err := suite.service.RegisterPayment(ctx, receivableID, decimal.NewFromInt(40), updaterUserID)

	suite.Require().NoError(err)
	suite.True(updated.PendingAmountBase.Equal(decimal.NewFromInt(60)))
	suite.True(updated.PendingAmountLocal.Equal(decimal.NewFromInt(2400)))
	suite.Equal(domain.ReceivablePartial, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestRegisterPayment_FullPaymentForcesPaid() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{
		ReceivableID:       receivableID,
		PendingAmountBase:  decimal.NewFromInt(60),
		PendingAmountLocal: decimal.NewFromInt(2400),
		Status:             domain.ReceivablePartial,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePendingAmounts", ctx, receivableID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		domain.ReceivablePaid, updaterUserID).Return(nil).Once()

	updated, err := suite.service.RegisterPayment(ctx, receivableID, decimal.NewFromInt(60), updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivablePaid, updated.Status)
	suite.True(updated.PendingAmountBase.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestRegisterPayment_Overpayment() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{
		ReceivableID:      receivableID,
		PendingAmountBase: decimal.NewFromInt(10),
		Status:            domain.ReceivablePending,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()

	updated, err := suite.service.RegisterPayment(ctx, receivableID, decimal.NewFromInt(50), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePendingAmounts")
}

func (suite *ReceivableServiceTestSuite) TestRegisterPayment_NonPositiveAmount() {
	updated, err := suite.service.RegisterPayment(context.Background(), uuid.NewString(), decimal.Zero, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindReceivableByID")
}

func (suite *ReceivableServiceTestSuite) TestRegisterPayment_AlreadyPaid() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{
		ReceivableID:      receivableID,
		PendingAmountBase: decimal.Zero,
		Status:            domain.ReceivablePaid,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()

	updated, err := suite.service.RegisterPayment(ctx, receivableID, decimal.NewFromInt(1), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReceivableServiceTestSuite) TestMarkPaid() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{
		ReceivableID:       receivableID,
		PendingAmountBase:  decimal.NewFromInt(30),
		PendingAmountLocal: decimal.NewFromInt(1200),
		Status:             domain.ReceivableOverdue,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePendingAmounts", ctx, receivableID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		domain.ReceivablePaid, updaterUserID).Return(nil).Once()

	updated, err := suite.service.MarkPaid(ctx, receivableID, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivablePaid, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestListPending_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListPendingReceivables", ctx).Return([]domain.Receivable(nil), nil).Once()

	receivables, err := suite.service.ListPending(ctx)

	suite.Require().NoError(err)
	suite.NotNil(receivables)
	suite.Empty(receivables)
}

func (suite *ReceivableServiceTestSuite) TestListPending_DerivesOverdueFromDueDate() {
	ctx := context.Background()
	pastDue := time.Now().Add(-48 * time.Hour)
	futureDue := time.Now().Add(48 * time.Hour)
	stored := []domain.Receivable{
		{ReceivableID: uuid.NewString(), Status: domain.ReceivablePending, DueDate: &pastDue},
		{ReceivableID: uuid.NewString(), Status: domain.ReceivablePartial, DueDate: &pastDue},
		{ReceivableID: uuid.NewString(), Status: domain.ReceivablePending, DueDate: &futureDue},
		{ReceivableID: uuid.NewString(), Status: domain.ReceivablePending},
	}

	suite.mockRepo.On("ListPendingReceivables", ctx).Return(stored, nil).Once()

	receivables, err := suite.service.ListPending(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(receivables, 4)
	suite.Equal(domain.ReceivableOverdue, receivables[0].Status)
	suite.Equal(domain.ReceivableOverdue, receivables[1].Status)
	suite.Equal(domain.ReceivablePending, receivables[2].Status)
	suite.Equal(domain.ReceivablePending, receivables[3].Status)
}

func (suite *ReceivableServiceTestSuite) TestGetReceivable_DerivesOverdueFromDueDate() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	pastDue := time.Now().Add(-time.Hour)
	stored := &domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivablePending,
		DueDate:      &pastDue,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(stored, nil).Once()

	receivable, err := suite.service.GetReceivableByID(ctx, receivableID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivableOverdue, receivable.Status)
	// The stored copy keeps the persisted status.
	suite.Equal(domain.ReceivablePending, stored.Status)
}

func (suite *ReceivableServiceTestSuite) TestGetReceivable_PaidNeverOverdue() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	pastDue := time.Now().Add(-time.Hour)
	stored := &domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivablePaid,
		DueDate:      &pastDue,
	}

	suite.mockRepo.On("FindReceivableByID", ctx, receivableID).Return(stored, nil).Once()

	receivable, err := suite.service.GetReceivableByID(ctx, receivableID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivablePaid, receivable.Status)
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
