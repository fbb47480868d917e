package repositories

import (
	"context"
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations over the ledger. None of them
// mutate state.
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction scoped to its owner.
	FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves all of a user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions created within [from, to].
	ListTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)

	// ListTransactionsByCategory retrieves a user's transactions for one category.
	ListTransactionsByCategory(ctx context.Context, userID, categoryID string) ([]domain.Transaction, error)

	// ListTransactionsByType retrieves income-only or expense-only entries,
	// selected by the sign their category type implies.
	ListTransactionsByType(ctx context.Context, userID string, categoryType domain.CategoryType) ([]domain.Transaction, error)

	// SummarizeByCategory groups a user's ledger by category with totals and counts.
	SummarizeByCategory(ctx context.Context, userID string) ([]domain.CategorySummary, error)

	// SumAmountByCategoryAndRange returns the signed sum of amounts for a
	// category within a date window. Budget seeding and reconciliation take
	// the absolute value of this figure.
	SumAmountByCategoryAndRange(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines the mutating ledger operations. Every method is
// one atomic unit: the transaction row and the balance delta commit or roll
// back together.
type TransactionWriter interface {
	// SaveTransaction inserts the entry and applies balanceDelta to the
	// owner's balance under a row lock.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// UpdateTransaction persists the patched entry and applies the
	// recomputed balance adjustment.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceAdjustment decimal.Decimal) error

	// DeleteTransaction removes the entry and applies balanceAdjustment
	// (the negated stored amount).
	DeleteTransaction(ctx context.Context, transactionID, userID string, balanceAdjustment decimal.Decimal) error
}

// TransactionTxSupport lets composite atomic units (goal funding, family
// contributions) insert ledger rows inside a caller-owned database transaction.
type TransactionTxSupport interface {
	// SaveTransactionInTx inserts the entry without touching the balance;
	// the caller composes the balance write in the same unit.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTxSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
