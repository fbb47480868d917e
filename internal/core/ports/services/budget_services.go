package services

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves one of the user's budgets.
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves all of the user's budgets.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// GetCurrentBudgets retrieves budgets whose window contains today.
	GetCurrentBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// GetCurrentMonthBudgets retrieves budgets overlapping the current month.
	GetCurrentMonthBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget creates a budget, seeding spent from existing ledger entries.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// UpdateBudget patches a budget's limit and window.
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, userID, budgetID string) error

	// UpdateSpentAmount sets the spent figure directly.
	UpdateSpentAmount(ctx context.Context, userID, budgetID string, spent decimal.Decimal) error

	// IncrementSpentAmount atomically adds delta to the spent figure.
	IncrementSpentAmount(ctx context.Context, userID, budgetID string, delta decimal.Decimal) error
}

// BudgetReconcilerSvc re-derives spent amounts from the ledger.
type BudgetReconcilerSvc interface {
	// ReconcileBudgets recomputes every active budget's spent amount,
	// writing back only on drift. Per-budget failures are logged and skipped.
	ReconcileBudgets(ctx context.Context) error
}

// BudgetSvcFacade combines all budget service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetReconcilerSvc
}
