package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/famledger/family_finance_app/internal/middleware"
)

var (
	ErrBudgetWindowInverted = errors.New("budget start date must not be after end date")
	ErrBudgetNotExpense     = errors.New("budgets track expense categories only")
)

// reconcilerActor is recorded as the audit actor for spent amounts written by
// the reconciliation sweep.
const reconcilerActor = "system-reconciler"

// budgetService provides budget CRUD plus the spent-amount maintenance
// paths. Spent figures are always derived from the ledger; the incremental
// writes are an optimization that reconciliation heals when they drift.
type budgetService struct {
	budgetRepo       portsrepo.BudgetRepositoryFacade
	txnRepo          portsrepo.TransactionReader
	contributionRepo portsrepo.ContributionReader
	categorySvc      portssvc.CategorySvcFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, txnRepo portsrepo.TransactionReader, contributionRepo portsrepo.ContributionReader, categorySvc portssvc.CategorySvcFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:       budgetRepo,
		txnRepo:          txnRepo,
		contributionRepo: contributionRepo,
		categorySvc:      categorySvc,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// deriveSpent recomputes a budget's spent amount from source data: the
// absolute signed sum of the owner's ledger entries in the window, plus
// contributions other users made to this budget.
func (s *budgetService) deriveSpent(ctx context.Context, b domain.Budget) (decimal.Decimal, error) {
	ownSum, err := s.txnRepo.SumAmountByCategoryAndRange(ctx, b.UserID, b.CategoryID, b.StartDate, b.EndDate)
	if err != nil {
		return decimal.Zero, err
	}
	contributed, err := s.contributionRepo.SumContributionsByTarget(ctx, b.BudgetID, b.UserID)
	if err != nil {
		return decimal.Zero, err
	}
	return ownSum.Abs().Add(contributed), nil
}

// CreateBudget creates a budget for an expense category, seeding the spent
// amount from ledger entries already inside the window.
func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.LimitAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.StartDate.After(req.EndDate) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrBudgetWindowInverted)
	}

	category, err := s.categorySvc.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}
	if category.Type != domain.Expense {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrBudgetNotExpense)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      userID,
		CategoryID:  category.CategoryID,
		LimitAmount: req.LimitAmount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	spent, err := s.deriveSpent(ctx, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to seed spent amount for new budget: %w", err)
	}
	budget.SpentAmount = spent

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	return &budget, nil
}

// UpdateBudget patches the limit and window. A window change re-derives the
// spent amount so the figure always reflects the entries the new window
// contains.
func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	existing, err := s.budgetRepo.FindBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.LimitAmount != nil {
		if !req.LimitAmount.IsPositive() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.LimitAmount = *req.LimitAmount
	}
	windowChanged := false
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
		windowChanged = true
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
		windowChanged = true
	}
	if updated.StartDate.After(updated.EndDate) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrBudgetWindowInverted)
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	if windowChanged {
		spent, err := s.deriveSpent(ctx, updated)
		if err != nil {
			return nil, fmt.Errorf("failed to re-derive spent amount for budget %s: %w", budgetID, err)
		}
		if err := s.budgetRepo.UpdateSpentAmount(ctx, budgetID, userID, spent, userID, updated.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to write re-derived spent amount for budget %s: %w", budgetID, err)
		}
		updated.SpentAmount = spent
	}

	return &updated, nil
}

// DeleteBudget removes a budget. Ledger entries are untouched; a budget is a
// view over them, not their owner.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.budgetRepo.DeleteBudget(ctx, budgetID, userID)
}

// GetBudgetByID retrieves one of the user's budgets.
func (s *budgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID, userID)
}

// ListBudgets retrieves all of the user's budgets.
func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgetsByUser(ctx, userID)
}

// GetCurrentBudgets retrieves budgets whose window contains today.
func (s *budgetService) GetCurrentBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.budgetRepo.ListCurrentBudgets(ctx, userID, time.Now())
}

// GetCurrentMonthBudgets retrieves budgets overlapping the current calendar
// month, including ones that only start or only end inside it.
func (s *budgetService) GetCurrentMonthBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.budgetRepo.ListMonthOverlappingBudgets(ctx, userID, time.Now())
}

// UpdateSpentAmount sets the spent figure directly.
func (s *budgetService) UpdateSpentAmount(ctx context.Context, userID, budgetID string, spent decimal.Decimal) error {
	if spent.IsNegative() {
		return fmt.Errorf("%w: spent amount cannot be negative", apperrors.ErrValidation)
	}
	return s.budgetRepo.UpdateSpentAmount(ctx, budgetID, userID, spent, userID, time.Now())
}

// IncrementSpentAmount atomically adds delta to the spent figure.
func (s *budgetService) IncrementSpentAmount(ctx context.Context, userID, budgetID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	return s.budgetRepo.IncrementSpentAmount(ctx, budgetID, userID, delta, userID, time.Now())
}

// ReconcileBudgets re-derives the spent amount of every currently active
// budget and writes back only the ones that drifted. A failure on one budget
// is logged and skipped; the sweep always visits the rest.
func (s *budgetService) ReconcileBudgets(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	budgets, err := s.budgetRepo.FindActiveBudgets(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list active budgets for reconciliation: %w", err)
	}

	var corrected, failed int
	for _, b := range budgets {
		derived, err := s.deriveSpent(ctx, b)
		if err != nil {
			logger.Warn("reconciliation skipped budget",
				slog.String("budget_id", b.BudgetID),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		if derived.Equal(b.SpentAmount) {
			continue
		}
		if err := s.budgetRepo.UpdateSpentAmount(ctx, b.BudgetID, b.UserID, derived, reconcilerActor, now); err != nil {
			logger.Warn("reconciliation failed to write spent amount",
				slog.String("budget_id", b.BudgetID),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Info("reconciliation corrected drifted budget",
			slog.String("budget_id", b.BudgetID),
			slog.String("stored", b.SpentAmount.String()),
			slog.String("derived", derived.String()))
		corrected++
	}

	logger.Info("budget reconciliation sweep finished",
		slog.Int("checked", len(budgets)),
		slog.Int("corrected", corrected),
		slog.Int("failed", failed))
	return nil
}
