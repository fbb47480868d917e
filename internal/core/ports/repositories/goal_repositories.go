package repositories

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// GoalReader defines read operations for goal data
type GoalReader interface {
	// FindGoalByID retrieves one goal scoped to its owner.
	FindGoalByID(ctx context.Context, goalID, userID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves all of a user's goals.
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)

	// FindGoalByIDAnyOwner retrieves a goal without the ownership scope.
	// Family contributions use it to load goals owned by other members.
	FindGoalByIDAnyOwner(ctx context.Context, goalID string) (*domain.Goal, error)
}

// GoalWriter defines write operations for goal data
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal updates a goal's details, ownership-scoped. Saved amount and
	// status changes go through the fund operations below instead.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal, ownership-scoped.
	DeleteGoal(ctx context.Context, goalID, userID string) error
}

// GoalFundSupport defines the atomic fund movements. Every method is one
// all-or-nothing unit against the store.
type GoalFundSupport interface {
	// SaveGoalFunding inserts the paired ledger transaction, applies its
	// signed amount to the owner's balance under a row lock, and writes the
	// goal's new saved amount and status, all in one unit.
	SaveGoalFunding(ctx context.Context, txn domain.Transaction, goal domain.Goal) error

	// TransferFunds writes both goals' new saved amounts and statuses in one
	// unit. No ledger row and no balance change: pure internal reallocation.
	TransferFunds(ctx context.Context, source, target domain.Goal) error

	// FindGoalByIDForUpdate selects the goal row and locks it inside a
	// caller-owned database transaction.
	FindGoalByIDForUpdate(ctx context.Context, tx pgx.Tx, goalID string) (*domain.Goal, error)

	// UpdateGoalAmountInTx writes the locked goal's saved amount and status.
	UpdateGoalAmountInTx(ctx context.Context, tx pgx.Tx, goal domain.Goal) error
}

// GoalRepositoryFacade combines all goal repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
	GoalFundSupport
}

// GoalRepositoryWithTx extends GoalRepositoryFacade with transaction capabilities
type GoalRepositoryWithTx interface {
	GoalRepositoryFacade
	TransactionManager
}
