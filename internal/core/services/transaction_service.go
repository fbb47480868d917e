package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/famledger/family_finance_app/internal/repositories/cache"
)

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrNothingToUpdate   = errors.New("update request carries no changes")
)

// transactionService provides the core ledger operations: every write pairs
// the transaction row with its balance effect, and every read goes through
// the user-scoped cache.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	userRepo    portsrepo.UserReader
	categorySvc portssvc.CategorySvcFacade
	cacheStore  portsrepo.CacheStore
	listTTL     time.Duration
	itemTTL     time.Duration
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserReader, categorySvc portssvc.CategorySvcFacade, cacheStore portsrepo.CacheStore, listTTL, itemTTL time.Duration) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		categorySvc: categorySvc,
		cacheStore:  cacheStore,
		listTTL:     listTTL,
		itemTTL:     itemTTL,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a new ledger entry. The stored sign comes from
// the category type, and the entry plus its balance delta commit as one unit.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error) {
	if !req.Amount.IsPositive() {
		return nil, decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	category, err := s.categorySvc.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, decimal.Zero, fmt.Errorf("%w: category %s does not exist", apperrors.ErrNotFound, req.CategoryID)
		}
		return nil, decimal.Zero, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    category.CategoryID,
		Amount:        domain.SignedAmount(req.Amount, category.Type),
		Description:   req.Description,
		CreatedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.Amount); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to save transaction: %w", err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, txn)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load balance after save: %w", err)
	}
	return &txn, user.Balance, nil
}

// UpdateTransaction patches an entry. The balance adjustment is the new
// signed amount minus the old one, applied atomically with the row update.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if req.CategoryID == nil && req.Amount == nil && req.Description == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNothingToUpdate)
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	categoryID := existing.CategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	category, err := s.categorySvc.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrNotFound, categoryID)
		}
		return nil, err
	}

	inputAmount := existing.Amount.Abs()
	if req.Amount != nil {
		inputAmount = *req.Amount
	}

	updated := *existing
	updated.CategoryID = category.CategoryID
	updated.Amount = domain.SignedAmount(inputAmount, category.Type)
	if req.Description != nil {
		updated.Description = *req.Description
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	adjustment := updated.Amount.Sub(existing.Amount)
	if err := s.txnRepo.UpdateTransaction(ctx, updated, adjustment); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	// Both the old and new shapes of the entry are stale now.
	invalidateLedgerCaches(ctx, s.cacheStore, userID, *existing, updated)

	return &updated, nil
}

// DeleteTransaction removes an entry, reversing its balance effect in the
// same atomic unit.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, userID, existing.Amount.Neg()); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, *existing)
	return nil
}

// GetTransactionByID retrieves one entry through the short-TTL item cache.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	key := cache.ItemKey(userID, transactionID)
	var cached domain.Transaction
	if cacheGet(ctx, s.cacheStore, key, &cached) {
		return &cached, nil
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cacheStore, key, txn, s.itemTTL)
	return txn, nil
}

// listThrough serves a list-shaped read from the cache, falling back to load
// and repopulating on a miss.
func (s *transactionService) listThrough(ctx context.Context, key string, load func() ([]domain.Transaction, error)) ([]domain.Transaction, error) {
	var cached []domain.Transaction
	if cacheGet(ctx, s.cacheStore, key, &cached) {
		return cached, nil
	}
	txns, err := load()
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cacheStore, key, txns, s.listTTL)
	return txns, nil
}

// ListTransactions retrieves all of the user's entries, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.listThrough(ctx, cache.ListKey(userID), func() ([]domain.Transaction, error) {
		return s.txnRepo.ListTransactionsByUser(ctx, userID)
	})
}

// ListTransactionsByDateRange retrieves entries within [from, to]. Only
// whole-calendar-month windows are cached; arbitrary ranges would be
// unreachable by key-based invalidation.
func (s *transactionService) ListTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	if month, ok := calendarMonthOf(from, to); ok {
		return s.listThrough(ctx, cache.MonthKey(userID, month), func() ([]domain.Transaction, error) {
			return s.txnRepo.ListTransactionsByDateRange(ctx, userID, from, to)
		})
	}
	return s.txnRepo.ListTransactionsByDateRange(ctx, userID, from, to)
}

// ListTransactionsByCategory retrieves the user's entries for one category.
func (s *transactionService) ListTransactionsByCategory(ctx context.Context, userID, categoryID string) ([]domain.Transaction, error) {
	return s.listThrough(ctx, cache.CategoryKey(userID, categoryID), func() ([]domain.Transaction, error) {
		return s.txnRepo.ListTransactionsByCategory(ctx, userID, categoryID)
	})
}

// ListIncomeTransactions retrieves income entries only.
func (s *transactionService) ListIncomeTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.listThrough(ctx, cache.IncomeKey(userID), func() ([]domain.Transaction, error) {
		return s.txnRepo.ListTransactionsByType(ctx, userID, domain.Income)
	})
}

// ListExpenseTransactions retrieves expense entries only.
func (s *transactionService) ListExpenseTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.listThrough(ctx, cache.ExpenseKey(userID), func() ([]domain.Transaction, error) {
		return s.txnRepo.ListTransactionsByType(ctx, userID, domain.Expense)
	})
}

// SummarizeByCategory groups the user's ledger by category.
func (s *transactionService) SummarizeByCategory(ctx context.Context, userID string) ([]domain.CategorySummary, error) {
	key := cache.SummaryKey(userID)
	var cached []domain.CategorySummary
	if cacheGet(ctx, s.cacheStore, key, &cached) {
		return cached, nil
	}

	summary, err := s.txnRepo.SummarizeByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cacheStore, key, summary, s.listTTL)
	return summary, nil
}

// calendarMonthOf reports whether [from, to] is exactly one calendar month
// and returns that month's cache label.
func calendarMonthOf(from, to time.Time) (string, bool) {
	monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	if !from.Equal(monthStart) {
		return "", false
	}
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	if !to.Equal(monthEnd) {
		return "", false
	}
	return monthStart.Format("2006-01"), true
}
