package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/core/services"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/famledger/family_finance_app/internal/repositories/cache"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	categorySvc := services.NewCategoryService(suite.mockCategoryRepo)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockUserRepo, categorySvc, nil, 300*time.Second, 60*time.Second)
}

func (suite *TransactionServiceTestSuite) expenseCategory() *domain.Category {
	return &domain.Category{CategoryID: "cat-groceries", Name: "Groceries", Type: domain.Expense}
}

func (suite *TransactionServiceTestSuite) incomeCategory() *domain.Category {
	return &domain.Category{CategoryID: "cat-salary", Name: "Salary", Type: domain.Income}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseStoredNegative() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{CategoryID: "cat-groceries", Amount: decimal.NewFromInt(50), Description: "weekly shop"}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-groceries").Return(suite.expenseCategory(), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.UserID == "user-1" &&
			t.CategoryID == "cat-groceries" &&
			t.Amount.Equal(decimal.NewFromInt(-50)) &&
			t.TransactionID != ""
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-50))
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.NewFromInt(950)}, nil).Once()

	txn, balance, err := suite.service.CreateTransaction(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(-50)))
	suite.True(balance.Equal(decimal.NewFromInt(950)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeStoredPositive() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{CategoryID: "cat-salary", Amount: decimal.NewFromInt(2000)}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-salary").Return(suite.incomeCategory(), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Amount.Equal(decimal.NewFromInt(2000))
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(2000))
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.NewFromInt(2000)}, nil).Once()

	txn, _, err := suite.service.CreateTransaction(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.True(txn.Amount.IsPositive())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, _, err := suite.service.CreateTransaction(ctx, "user-1", dto.CreateTransactionRequest{
			CategoryID: "cat-groceries",
			Amount:     amount,
		})
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.ErrorIs(err, services.ErrAmountNotPositive)
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingCategoryIsNotFound() {
	ctx := context.Background()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CreateTransaction(ctx, "user-1", dto.CreateTransactionRequest{
		CategoryID: "cat-missing",
		Amount:     decimal.NewFromInt(5),
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MissingCategoryIsNotFound() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		CategoryID:    "cat-groceries",
		Amount:        decimal.NewFromInt(-50),
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	missing := "cat-missing"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1", "user-1").Return(existing, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateTransaction(ctx, "user-1", "txn-1", dto.UpdateTransactionRequest{
		CategoryID: &missing,
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AdjustmentIsNewMinusOld() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		CategoryID:    "cat-groceries",
		Amount:        decimal.NewFromInt(-50),
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	newAmount := decimal.NewFromInt(80)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1", "user-1").Return(existing, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-groceries").Return(suite.expenseCategory(), nil).Once()
	// old -50, new -80: balance must move by -30
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == "txn-1" && t.Amount.Equal(decimal.NewFromInt(-80))
	}), mock.MatchedBy(func(adjustment decimal.Decimal) bool {
		return adjustment.Equal(decimal.NewFromInt(-30))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, "user-1", "txn-1", dto.UpdateTransactionRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(-80)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_CategorySwitchFlipsSign() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		CategoryID:    "cat-groceries",
		Amount:        decimal.NewFromInt(-40),
	}
	incomeID := "cat-salary"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1", "user-1").Return(existing, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, incomeID).Return(suite.incomeCategory(), nil).Once()
	// same magnitude, opposite sign: adjustment is +80
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CategoryID == incomeID && t.Amount.Equal(decimal.NewFromInt(40))
	}), mock.MatchedBy(func(adjustment decimal.Decimal) bool {
		return adjustment.Equal(decimal.NewFromInt(80))
	})).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, "user-1", "txn-1", dto.UpdateTransactionRequest{CategoryID: &incomeID})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyPatchRejected() {
	ctx := context.Background()

	_, err := suite.service.UpdateTransaction(ctx, "user-1", "txn-1", dto.UpdateTransactionRequest{})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNothingToUpdate)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesStoredAmount() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		CategoryID:    "cat-groceries",
		Amount:        decimal.NewFromInt(-25),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1", "user-1").Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, "txn-1", "user-1", mock.MatchedBy(func(adjustment decimal.Decimal) bool {
		return adjustment.Equal(decimal.NewFromInt(25))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, "user-1", "txn-1")

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-missing", "user-1").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, "user-1", "txn-missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

// TransactionCacheTestSuite exercises the read-through cache with a real
// in-memory store instead of a nil one.
type TransactionCacheTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	store            *cache.MemoryStore
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionCacheTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.store = cache.NewMemoryStore()
	categorySvc := services.NewCategoryService(suite.mockCategoryRepo)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockUserRepo, categorySvc, suite.store, 300*time.Second, 60*time.Second)
}

func (suite *TransactionCacheTestSuite) TestListTransactions_SecondReadServedFromCache() {
	ctx := context.Background()
	txns := []domain.Transaction{{TransactionID: "txn-1", UserID: "user-1", Amount: decimal.NewFromInt(-10)}}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, "user-1").Return(txns, nil).Once()

	first, err := suite.service.ListTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	second, err := suite.service.ListTransactions(ctx, "user-1")
	suite.Require().NoError(err)

	suite.Equal(first[0].TransactionID, second[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "ListTransactionsByUser", 1)
}

func (suite *TransactionCacheTestSuite) TestCreateTransaction_InvalidatesListCache() {
	ctx := context.Background()
	txns := []domain.Transaction{{TransactionID: "txn-1", UserID: "user-1", Amount: decimal.NewFromInt(-10)}}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, "user-1").Return(txns, nil).Twice()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-groceries").
		Return(&domain.Category{CategoryID: "cat-groceries", Type: domain.Expense}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.Zero}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, "user-1")
	suite.Require().NoError(err)

	_, _, err = suite.service.CreateTransaction(ctx, "user-1", dto.CreateTransactionRequest{
		CategoryID: "cat-groceries",
		Amount:     decimal.NewFromInt(10),
	})
	suite.Require().NoError(err)

	// The write dropped the list key, so this read hits the repository again.
	_, err = suite.service.ListTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionCacheTestSuite) TestListByDateRange_ArbitraryWindowBypassesCache() {
	ctx := context.Background()
	from := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	suite.mockTxnRepo.On("ListTransactionsByDateRange", ctx, "user-1", from, to).
		Return([]domain.Transaction{}, nil).Twice()

	_, err := suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionCacheTestSuite) TestListByDateRange_CalendarMonthIsCached() {
	ctx := context.Background()
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	suite.mockTxnRepo.On("ListTransactionsByDateRange", ctx, "user-1", from, to).
		Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "ListTransactionsByDateRange", 1)
}

func (suite *TransactionCacheTestSuite) TestListByDateRange_WindowPastMonthEndBypassesCache() {
	ctx := context.Background()
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	suite.mockTxnRepo.On("ListTransactionsByDateRange", ctx, "user-1", from, to).
		Return([]domain.Transaction{}, nil).Twice()

	_, err := suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactionsByDateRange(ctx, "user-1", from, to)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionCacheTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionCacheTestSuite))
}
