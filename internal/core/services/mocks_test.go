package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) IncrementUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, userID, delta)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCategory(ctx context.Context, userID, categoryID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByType(ctx context.Context, userID string, categoryType domain.CategoryType) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SummarizeByCategory(ctx context.Context, userID string) ([]domain.CategorySummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountByCategoryAndRange(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, categoryID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceAdjustment decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceAdjustment)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, userID string, balanceAdjustment decimal.Decimal) error {
	args := m.Called(ctx, transactionID, userID, balanceAdjustment)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListCurrentBudgets(ctx context.Context, userID string, asOf time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListMonthOverlappingBudgets(ctx context.Context, userID string, monthOf time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, monthOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindActiveBudgets(ctx context.Context, asOf time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetByIDAnyOwner(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID, userID string) error {
	args := m.Called(ctx, budgetID, userID)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateSpentAmount(ctx context.Context, budgetID, userID string, spent decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, budgetID, userID, spent, updatedBy, now)
	return args.Error(0)
}

func (m *MockBudgetRepository) IncrementSpentAmount(ctx context.Context, budgetID, userID string, delta decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, budgetID, userID, delta, updatedBy, now)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByIDForUpdate(ctx context.Context, tx pgx.Tx, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, tx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) IncrementSpentAmountInTx(ctx context.Context, tx pgx.Tx, budgetID string, delta decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, budgetID, delta, updatedBy, now)
	return args.Error(0)
}

// --- Mock GoalRepository ---

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, goalID, userID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) FindGoalByIDAnyOwner(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, goalID, userID string) error {
	args := m.Called(ctx, goalID, userID)
	return args.Error(0)
}

func (m *MockGoalRepository) SaveGoalFunding(ctx context.Context, txn domain.Transaction, goal domain.Goal) error {
	args := m.Called(ctx, txn, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) TransferFunds(ctx context.Context, source, target domain.Goal) error {
	args := m.Called(ctx, source, target)
	return args.Error(0)
}

func (m *MockGoalRepository) FindGoalByIDForUpdate(ctx context.Context, tx pgx.Tx, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, tx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) UpdateGoalAmountInTx(ctx context.Context, tx pgx.Tx, goal domain.Goal) error {
	args := m.Called(ctx, tx, goal)
	return args.Error(0)
}

// --- Mock ContributionRepository ---

type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) ListContributionsByGroup(ctx context.Context, groupID string) ([]domain.FamilyContribution, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyContribution), args.Error(1)
}

func (m *MockContributionRepository) ListContributionsByTarget(ctx context.Context, groupID, targetID string) ([]domain.FamilyContribution, error) {
	args := m.Called(ctx, groupID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyContribution), args.Error(1)
}

func (m *MockContributionRepository) SumContributionsByTarget(ctx context.Context, targetID, excludeUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, targetID, excludeUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockContributionRepository) SaveGoalContribution(ctx context.Context, txn domain.Transaction, goal domain.Goal, contribution domain.FamilyContribution) error {
	args := m.Called(ctx, txn, goal, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) SaveBudgetContribution(ctx context.Context, txn domain.Transaction, contribution domain.FamilyContribution) error {
	args := m.Called(ctx, txn, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.FamilyContribution) error {
	args := m.Called(ctx, tx, contribution)
	return args.Error(0)
}

// --- Mock GroupRepository ---

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.FamilyGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.FamilyGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyGroup), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.FamilyGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyGroup), args.Error(1)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}
