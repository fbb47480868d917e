package services

import (
	"context"
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines the cache-wrapped ledger read paths.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one of the user's transactions.
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all of the user's transactions.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions within [from, to].
	ListTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)

	// ListTransactionsByCategory retrieves transactions for one category.
	ListTransactionsByCategory(ctx context.Context, userID, categoryID string) ([]domain.Transaction, error)

	// ListIncomeTransactions retrieves income entries only.
	ListIncomeTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListExpenseTransactions retrieves expense entries only.
	ListExpenseTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// SummarizeByCategory groups the user's ledger by category.
	SummarizeByCategory(ctx context.Context, userID string) ([]domain.CategorySummary, error)
}

// TransactionWriterSvc defines the mutating ledger operations. Each one
// adjusts the owner's balance in the same atomic unit and invalidates the
// user's cached read paths after commit.
type TransactionWriterSvc interface {
	// CreateTransaction records a new entry and returns it with the new balance.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error)

	// UpdateTransaction patches an entry and re-derives the balance delta.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes an entry, reversing its balance effect.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionSvcFacade combines all ledger service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
