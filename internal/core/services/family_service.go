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
	ErrNotGroupMember     = errors.New("user is not a member of this group")
	ErrTargetOutsideGroup = errors.New("target does not belong to a member of this group")
)

// familyService wraps fund movements for shared budgets and goals. Every
// contribution is the member's own ledger entry plus one immutable provenance
// row, committed together.
type familyService struct {
	groupRepo        portsrepo.GroupRepositoryFacade
	contributionRepo portsrepo.ContributionRepositoryFacade
	goalRepo         portsrepo.GoalReader
	budgetRepo       portsrepo.BudgetReader
	userRepo         portsrepo.UserReader
	cacheStore       portsrepo.CacheStore
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(groupRepo portsrepo.GroupRepositoryFacade, contributionRepo portsrepo.ContributionRepositoryFacade, goalRepo portsrepo.GoalReader, budgetRepo portsrepo.BudgetReader, userRepo portsrepo.UserReader, cacheStore portsrepo.CacheStore) portssvc.FamilySvcFacade {
	return &familyService{
		groupRepo:        groupRepo,
		contributionRepo: contributionRepo,
		goalRepo:         goalRepo,
		budgetRepo:       budgetRepo,
		userRepo:         userRepo,
		cacheStore:       cacheStore,
	}
}

var _ portssvc.FamilySvcFacade = (*familyService)(nil)

// CreateGroup creates a group owned by the caller, who becomes its first
// member.
func (s *familyService) CreateGroup(ctx context.Context, userID string, req dto.CreateGroupRequest) (*domain.FamilyGroup, error) {
	now := time.Now()
	group := domain.FamilyGroup{
		GroupID:     uuid.NewString(),
		Name:        req.Name,
		OwnerUserID: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return &group, nil
}

// ListGroups retrieves the groups the caller belongs to.
func (s *familyService) ListGroups(ctx context.Context, userID string) ([]domain.FamilyGroup, error) {
	return s.groupRepo.ListGroupsByUser(ctx, userID)
}

// requireMembership checks that userID belongs to groupID.
func (s *familyService) requireMembership(ctx context.Context, groupID, userID string) error {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrNotGroupMember)
	}
	return nil
}

// ContributeToGoal adds funds to a shared goal on a member's behalf. The
// member's expense entry, their balance decrement, the goal update and the
// provenance row commit as one unit.
func (s *familyService) ContributeToGoal(ctx context.Context, userID, groupID, goalID string, amount decimal.Decimal, description string) (*domain.FamilyContribution, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.FindGoalByIDAnyOwner(ctx, goalID)
	if err != nil {
		return nil, err
	}
	ownerIsMember, err := s.groupRepo.IsMember(ctx, groupID, goal.UserID)
	if err != nil {
		return nil, err
	}
	if !ownerIsMember {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrTargetOutsideGroup)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInsufficientBalance)
	}

	if description == "" {
		description = "Contribution to goal: " + goal.Name
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    domain.GoalFundingCategoryID,
		Amount:        amount.Neg(),
		Description:   description,
		CreatedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	updatedGoal := *goal
	updatedGoal.SavedAmount = goal.SavedAmount.Add(amount)
	updatedGoal.Status = domain.GoalStatusFor(updatedGoal.SavedAmount, updatedGoal.TargetAmount)
	updatedGoal.LastUpdatedAt = now
	updatedGoal.LastUpdatedBy = userID

	contribution := domain.FamilyContribution{
		ContributionID: uuid.NewString(),
		TransactionID:  txn.TransactionID,
		GroupID:        groupID,
		UserID:         userID,
		Amount:         amount,
		Type:           domain.ContributionGoal,
		TargetID:       goalID,
		CreatedAt:      now,
	}

	if err := s.contributionRepo.SaveGoalContribution(ctx, txn, updatedGoal, contribution); err != nil {
		return nil, fmt.Errorf("failed to save goal contribution: %w", err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, txn)
	return &contribution, nil
}

// ContributeToBudget records spending against a shared budget on a member's
// behalf. The expense lands in the member's own ledger against the budget's
// category; the budget's spent amount and the provenance row commit with it.
func (s *familyService) ContributeToBudget(ctx context.Context, userID, groupID, budgetID string, amount decimal.Decimal, description string) (*domain.FamilyContribution, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.FindBudgetByIDAnyOwner(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	ownerIsMember, err := s.groupRepo.IsMember(ctx, groupID, budget.UserID)
	if err != nil {
		return nil, err
	}
	if !ownerIsMember {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrTargetOutsideGroup)
	}

	if description == "" {
		description = "Contribution to shared budget"
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    budget.CategoryID,
		Amount:        amount.Neg(),
		Description:   description,
		CreatedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	contribution := domain.FamilyContribution{
		ContributionID: uuid.NewString(),
		TransactionID:  txn.TransactionID,
		GroupID:        groupID,
		UserID:         userID,
		Amount:         amount,
		Type:           domain.ContributionBudget,
		TargetID:       budgetID,
		CreatedAt:      now,
	}

	if err := s.contributionRepo.SaveBudgetContribution(ctx, txn, contribution); err != nil {
		return nil, fmt.Errorf("failed to save budget contribution: %w", err)
	}

	invalidateLedgerCaches(ctx, s.cacheStore, userID, txn)
	return &contribution, nil
}

// ListGroupContributions reconstructs a group's full provenance, newest
// first. Only members may read it.
func (s *familyService) ListGroupContributions(ctx context.Context, userID, groupID string) ([]domain.FamilyContribution, error) {
	if err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.contributionRepo.ListContributionsByGroup(ctx, groupID)
}
