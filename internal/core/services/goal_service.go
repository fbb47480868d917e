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
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance to fund goal")
	ErrInsufficientGoalFunds = errors.New("goal does not hold enough saved funds")
	ErrGoalHoldsFunds        = errors.New("goal still holds saved funds; withdraw them first")
	ErrSameGoalTransfer      = errors.New("source and target goal must differ")
)

// goalService provides goal CRUD and the fund movements between the running
// balance and saved amounts. Add and withdraw always pair the goal update
// with one ledger entry against the reserved goal categories; transfers move
// saved funds between goals without touching the ledger or the balance.
type goalService struct {
	goalRepo   portsrepo.GoalRepositoryFacade
	userRepo   portsrepo.UserReader
	cacheStore portsrepo.CacheStore
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, userRepo portsrepo.UserReader, cacheStore portsrepo.CacheStore) portssvc.GoalSvcFacade {
	return &goalService{
		goalRepo:   goalRepo,
		userRepo:   userRepo,
		cacheStore: cacheStore,
	}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

// CreateGoal creates a new goal with nothing saved yet.
func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  decimal.Zero,
		Status:       domain.GoalStatusFor(decimal.Zero, req.TargetAmount),
		DueDate:      req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return &goal, nil
}

// UpdateGoal patches a goal's name, target and due date. A target change
// recomputes the status from the unchanged saved amount.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	existing, err := s.goalRepo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.TargetAmount = *req.TargetAmount
		updated.Status = domain.GoalStatusFor(updated.SavedAmount, updated.TargetAmount)
	}
	if req.DueDate != nil {
		updated.DueDate = *req.DueDate
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}
	return &updated, nil
}

// DeleteGoal removes a goal. A goal still holding saved funds is refused so
// money never silently disappears from the saved total.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	existing, err := s.goalRepo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return err
	}
	if existing.SavedAmount.IsPositive() {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrGoalHoldsFunds)
	}
	return s.goalRepo.DeleteGoal(ctx, goalID, userID)
}

// GetGoalByID retrieves one of the user's goals.
func (s *goalService) GetGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	return s.goalRepo.FindGoalByID(ctx, goalID, userID)
}

// ListGoals retrieves all of the user's goals.
func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.ListGoalsByUser(ctx, userID)
}

// AddFunds moves amount from the user's balance into the goal. The expense
// entry, the balance decrement and the goal update commit as one unit.
func (s *goalService) AddFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	goal, err := s.goalRepo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInsufficientBalance)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    domain.GoalFundingCategoryID,
		Amount:        amount.Neg(),
		Description:   "Transfer to goal: " + goal.Name,
		CreatedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	updated := *goal
	updated.SavedAmount = goal.SavedAmount.Add(amount)
	updated.Status = domain.GoalStatusFor(updated.SavedAmount, updated.TargetAmount)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.goalRepo.SaveGoalFunding(ctx, txn, updated); err != nil {
		return nil, fmt.Errorf("failed to add funds to goal %s: %w", goalID, err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, txn)
	return &updated, nil
}

// WithdrawFunds moves amount from the goal back to the user's balance via an
// income entry on the reserved withdrawal category.
func (s *goalService) WithdrawFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	goal, err := s.goalRepo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	if goal.SavedAmount.LessThan(amount) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInsufficientGoalFunds)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    domain.GoalWithdrawalCategoryID,
		Amount:        amount,
		Description:   "Withdrawal from goal: " + goal.Name,
		CreatedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	updated := *goal
	updated.SavedAmount = goal.SavedAmount.Sub(amount)
	updated.Status = domain.GoalStatusFor(updated.SavedAmount, updated.TargetAmount)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.goalRepo.SaveGoalFunding(ctx, txn, updated); err != nil {
		return nil, fmt.Errorf("failed to withdraw funds from goal %s: %w", goalID, err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, txn)
	return &updated, nil
}

// TransferFundsBetweenGoals reallocates saved funds between two of the
// user's goals. The running balance is unaffected, so no ledger entry is
// written.
func (s *goalService) TransferFundsBetweenGoals(ctx context.Context, userID, sourceGoalID, targetGoalID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if sourceGoalID == targetGoalID {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSameGoalTransfer)
	}

	source, err := s.goalRepo.FindGoalByID(ctx, sourceGoalID, userID)
	if err != nil {
		return err
	}
	target, err := s.goalRepo.FindGoalByID(ctx, targetGoalID, userID)
	if err != nil {
		return err
	}
	if source.SavedAmount.LessThan(amount) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInsufficientGoalFunds)
	}

	now := time.Now()
	updatedSource := *source
	updatedSource.SavedAmount = source.SavedAmount.Sub(amount)
	updatedSource.Status = domain.GoalStatusFor(updatedSource.SavedAmount, updatedSource.TargetAmount)
	updatedSource.LastUpdatedAt = now
	updatedSource.LastUpdatedBy = userID

	updatedTarget := *target
	updatedTarget.SavedAmount = target.SavedAmount.Add(amount)
	updatedTarget.Status = domain.GoalStatusFor(updatedTarget.SavedAmount, updatedTarget.TargetAmount)
	updatedTarget.LastUpdatedAt = now
	updatedTarget.LastUpdatedBy = userID

	if err := s.goalRepo.TransferFunds(ctx, updatedSource, updatedTarget); err != nil {
		return fmt.Errorf("failed to transfer funds from goal %s to goal %s: %w", sourceGoalID, targetGoalID, err)
	}
	return nil
}
