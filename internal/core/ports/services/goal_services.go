package services

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// GoalReaderSvc defines read operations for goal data
type GoalReaderSvc interface {
	// GetGoalByID retrieves one of the user's goals.
	GetGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)

	// ListGoals retrieves all of the user's goals.
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriterSvc defines write operations for goal data
type GoalWriterSvc interface {
	// CreateGoal creates a new goal in PENDING status.
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)

	// UpdateGoal patches a goal's name, target and due date.
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)

	// DeleteGoal removes a goal.
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// GoalFundSvc defines the fund movements. Add and withdraw pair the goal
// update with exactly one ledger transaction; transfer touches neither the
// ledger nor the balance.
type GoalFundSvc interface {
	// AddFunds moves amount from the user's balance into the goal.
	AddFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error)

	// WithdrawFunds moves amount from the goal back to the balance.
	WithdrawFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error)

	// TransferFundsBetweenGoals reallocates saved funds between two goals.
	TransferFundsBetweenGoals(ctx context.Context, userID, sourceGoalID, targetGoalID string, amount decimal.Decimal) error
}

// GoalSvcFacade combines all goal service interfaces
type GoalSvcFacade interface {
	GoalReaderSvc
	GoalWriterSvc
	GoalFundSvc
}
