package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
	portsrepo "github.com/comerzia/comerzia_backend/internal/core/ports/repositories"
	portssvc "github.com/comerzia/comerzia_backend/internal/core/ports/services"
	"github.com/comerzia/comerzia_backend/internal/dto"
	"github.com/comerzia/comerzia_backend/internal/utils/currency"
	"github.com/comerzia/comerzia_backend/internal/utils/pagination"
)

// expenseService records outgoing payments. Amounts and the applied rate are
// frozen at creation; later edits only touch descriptive fields.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	rateService portssvc.RateSvcFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, rateService portssvc.RateSvcFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, rateService: rateService}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.BusinessExpense, error) {
	rate, err := s.rateService.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = now
	}
	expense := domain.BusinessExpense{
		ExpenseID:   uuid.NewString(),
		Description: req.Description,
		Category:    req.Category,
		AmountBase:  req.AmountBase,
		AmountLocal: currency.ToLocal(req.AmountBase, rate),
		RateApplied: rate,
		ExpenseDate: expenseDate,
		ReceiptURL:  req.ReceiptURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.BusinessExpense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.ReceiptURL != nil {
		expense.ReceiptURL = *req.ReceiptURL
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.BusinessExpense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, params pagination.Params) (*pagination.Result[domain.BusinessExpense], error) {
	return s.expenseRepo.ListExpenses(ctx, params)
}

func (s *expenseService) ListExpensesByPeriod(ctx context.Context, from, to time.Time, category string) ([]domain.BusinessExpense, error) {
	expenses, err := s.expenseRepo.ListExpensesByPeriod(ctx, from, to, category)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []domain.BusinessExpense{}
	}
	return expenses, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.expenseRepo.DeleteExpense(ctx, expenseID)
}
