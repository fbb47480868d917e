package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/core/services"
	"github.com/famledger/family_finance_app/internal/dto"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo       *MockBudgetRepository
	mockTxnRepo          *MockTransactionRepository
	mockContributionRepo *MockContributionRepository
	mockCategoryRepo     *MockCategoryRepository
	service              portssvc.BudgetSvcFacade

	windowStart time.Time
	windowEnd   time.Time
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	categorySvc := services.NewCategoryService(suite.mockCategoryRepo)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockTxnRepo, suite.mockContributionRepo, categorySvc)

	suite.windowStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.windowEnd = time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
}

func (suite *BudgetServiceTestSuite) expenseCategory() *domain.Category {
	return &domain.Category{CategoryID: "cat-groceries", Name: "Groceries", Type: domain.Expense}
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_SeedsSpentFromLedger() {
	ctx := context.Background()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-groceries").Return(suite.expenseCategory(), nil).Once()
	// owner's expenses sum to -80 in the window; another member contributed 20
	suite.mockTxnRepo.On("SumAmountByCategoryAndRange", ctx, "user-1", "cat-groceries", suite.windowStart, suite.windowEnd).
		Return(decimal.NewFromInt(-80), nil).Once()
	suite.mockContributionRepo.On("SumContributionsByTarget", ctx, mock.AnythingOfType("string"), "user-1").
		Return(decimal.NewFromInt(20), nil).Once()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == "user-1" && b.SpentAmount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, "user-1", dto.CreateBudgetRequest{
		CategoryID:  "cat-groceries",
		LimitAmount: decimal.NewFromInt(400),
		StartDate:   suite.windowStart,
		EndDate:     suite.windowEnd,
	})

	suite.Require().NoError(err)
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(100)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsIncomeCategory() {
	ctx := context.Background()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-salary").
		Return(&domain.Category{CategoryID: "cat-salary", Type: domain.Income}, nil).Once()

	_, err := suite.service.CreateBudget(ctx, "user-1", dto.CreateBudgetRequest{
		CategoryID:  "cat-salary",
		LimitAmount: decimal.NewFromInt(400),
		StartDate:   suite.windowStart,
		EndDate:     suite.windowEnd,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrBudgetNotExpense)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsInvertedWindow() {
	ctx := context.Background()

	_, err := suite.service.CreateBudget(ctx, "user-1", dto.CreateBudgetRequest{
		CategoryID:  "cat-groceries",
		LimitAmount: decimal.NewFromInt(400),
		StartDate:   suite.windowEnd,
		EndDate:     suite.windowStart,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrBudgetWindowInverted)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_WindowChangeReDerivesSpent() {
	ctx := context.Background()
	existing := &domain.Budget{
		BudgetID:    "budget-1",
		UserID:      "user-1",
		CategoryID:  "cat-groceries",
		LimitAmount: decimal.NewFromInt(400),
		SpentAmount: decimal.NewFromInt(100),
		StartDate:   suite.windowStart,
		EndDate:     suite.windowEnd,
	}
	newEnd := suite.windowEnd.AddDate(0, 1, 0)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "budget-1", "user-1").Return(existing, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.EndDate.Equal(newEnd)
	})).Return(nil).Once()
	suite.mockTxnRepo.On("SumAmountByCategoryAndRange", ctx, "user-1", "cat-groceries", suite.windowStart, newEnd).
		Return(decimal.NewFromInt(-150), nil).Once()
	suite.mockContributionRepo.On("SumContributionsByTarget", ctx, "budget-1", "user-1").
		Return(decimal.Zero, nil).Once()
	suite.mockBudgetRepo.On("UpdateSpentAmount", ctx, "budget-1", "user-1", mock.MatchedBy(func(spent decimal.Decimal) bool {
		return spent.Equal(decimal.NewFromInt(150))
	}), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, "user-1", "budget-1", dto.UpdateBudgetRequest{EndDate: &newEnd})

	suite.Require().NoError(err)
	suite.True(updated.SpentAmount.Equal(decimal.NewFromInt(150)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_LimitOnlyChangeSkipsDerivation() {
	ctx := context.Background()
	existing := &domain.Budget{
		BudgetID:    "budget-1",
		UserID:      "user-1",
		CategoryID:  "cat-groceries",
		LimitAmount: decimal.NewFromInt(400),
		SpentAmount: decimal.NewFromInt(100),
		StartDate:   suite.windowStart,
		EndDate:     suite.windowEnd,
	}
	newLimit := decimal.NewFromInt(600)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "budget-1", "user-1").Return(existing, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.LimitAmount.Equal(newLimit)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, "user-1", "budget-1", dto.UpdateBudgetRequest{LimitAmount: &newLimit})

	suite.Require().NoError(err)
	suite.True(updated.SpentAmount.Equal(decimal.NewFromInt(100)))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumAmountByCategoryAndRange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateSpentAmount_RejectsNegative() {
	ctx := context.Background()

	err := suite.service.UpdateSpentAmount(ctx, "user-1", "budget-1", decimal.NewFromInt(-5))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateSpentAmount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestIncrementSpentAmount_ZeroDeltaIsNoOp() {
	ctx := context.Background()

	err := suite.service.IncrementSpentAmount(ctx, "user-1", "budget-1", decimal.Zero)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "IncrementSpentAmount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) activeBudget(id string, spent int64) domain.Budget {
	return domain.Budget{
		BudgetID:    id,
		UserID:      "user-1",
		CategoryID:  "cat-groceries",
		LimitAmount: decimal.NewFromInt(400),
		SpentAmount: decimal.NewFromInt(spent),
		StartDate:   suite.windowStart,
		EndDate:     suite.windowEnd,
	}
}

func (suite *BudgetServiceTestSuite) TestReconcileBudgets_WritesOnlyDriftedBudgets() {
	ctx := context.Background()
	inSync := suite.activeBudget("budget-ok", 100)
	drifted := suite.activeBudget("budget-drift", 100)

	suite.mockBudgetRepo.On("FindActiveBudgets", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.Budget{inSync, drifted}, nil).Once()
	suite.mockTxnRepo.On("SumAmountByCategoryAndRange", ctx, "user-1", "cat-groceries", suite.windowStart, suite.windowEnd).
		Return(decimal.NewFromInt(-100), nil).Times(2)
	suite.mockContributionRepo.On("SumContributionsByTarget", ctx, "budget-ok", "user-1").
		Return(decimal.Zero, nil).Once()
	// derived 100 + 35 = 135 against a stored 100
	suite.mockContributionRepo.On("SumContributionsByTarget", ctx, "budget-drift", "user-1").
		Return(decimal.NewFromInt(35), nil).Once()
	suite.mockBudgetRepo.On("UpdateSpentAmount", ctx, "budget-drift", "user-1", mock.MatchedBy(func(spent decimal.Decimal) bool {
		return spent.Equal(decimal.NewFromInt(135))
	}), "system-reconciler", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ReconcileBudgets(ctx)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockBudgetRepo.AssertNumberOfCalls(suite.T(), "UpdateSpentAmount", 1)
}

func (suite *BudgetServiceTestSuite) TestReconcileBudgets_OneFailureDoesNotStopSweep() {
	ctx := context.Background()
	failing := suite.activeBudget("budget-bad", 10)
	failing.CategoryID = "cat-broken"
	healthy := suite.activeBudget("budget-good", 10)

	suite.mockBudgetRepo.On("FindActiveBudgets", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.Budget{failing, healthy}, nil).Once()
	suite.mockTxnRepo.On("SumAmountByCategoryAndRange", ctx, "user-1", "cat-broken", suite.windowStart, suite.windowEnd).
		Return(decimal.Zero, assert.AnError).Once()
	suite.mockTxnRepo.On("SumAmountByCategoryAndRange", ctx, "user-1", "cat-groceries", suite.windowStart, suite.windowEnd).
		Return(decimal.NewFromInt(-25), nil).Once()
	suite.mockContributionRepo.On("SumContributionsByTarget", ctx, "budget-good", "user-1").
		Return(decimal.Zero, nil).Once()
	suite.mockBudgetRepo.On("UpdateSpentAmount", ctx, "budget-good", "user-1", mock.MatchedBy(func(spent decimal.Decimal) bool {
		return spent.Equal(decimal.NewFromInt(25))
	}), "system-reconciler", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ReconcileBudgets(ctx)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
