package repositories

import (
	"context"
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves one budget scoped to its owner.
	FindBudgetByID(ctx context.Context, budgetID, userID string) (*domain.Budget, error)

	// ListBudgetsByUser retrieves all of a user's budgets.
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)

	// ListCurrentBudgets retrieves budgets whose window contains asOf.
	ListCurrentBudgets(ctx context.Context, userID string, asOf time.Time) ([]domain.Budget, error)

	// ListMonthOverlappingBudgets retrieves budgets whose window intersects
	// the calendar month containing monthOf.
	ListMonthOverlappingBudgets(ctx context.Context, userID string, monthOf time.Time) ([]domain.Budget, error)

	// FindActiveBudgets retrieves every budget, across all users, whose
	// window contains asOf. Used by reconciliation.
	FindActiveBudgets(ctx context.Context, asOf time.Time) ([]domain.Budget, error)

	// FindBudgetByIDAnyOwner retrieves a budget without the ownership scope.
	// Family contributions use it to load budgets owned by other members.
	FindBudgetByIDAnyOwner(ctx context.Context, budgetID string) (*domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates a budget's limit and window, ownership-scoped.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget, ownership-scoped.
	DeleteBudget(ctx context.Context, budgetID, userID string) error

	// UpdateSpentAmount sets spent_amount directly, ownership-scoped.
	UpdateSpentAmount(ctx context.Context, budgetID, userID string, spent decimal.Decimal, updatedBy string, now time.Time) error

	// IncrementSpentAmount atomically adds delta to spent_amount.
	IncrementSpentAmount(ctx context.Context, budgetID, userID string, delta decimal.Decimal, updatedBy string, now time.Time) error
}

// BudgetTxSupport lets composite atomic units adjust spent amounts inside a
// caller-owned database transaction.
type BudgetTxSupport interface {
	// FindBudgetByIDForUpdate selects the budget row and locks it.
	FindBudgetByIDForUpdate(ctx context.Context, tx pgx.Tx, budgetID string) (*domain.Budget, error)

	// IncrementSpentAmountInTx adds delta to the locked budget's spent_amount.
	IncrementSpentAmountInTx(ctx context.Context, tx pgx.Tx, budgetID string, delta decimal.Decimal, updatedBy string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetTxSupport
}
