package repositories

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ContributionReader defines read operations over provenance records.
type ContributionReader interface {
	// ListContributionsByGroup retrieves a group's contributions, newest first.
	ListContributionsByGroup(ctx context.Context, groupID string) ([]domain.FamilyContribution, error)

	// ListContributionsByTarget retrieves contributions against one shared
	// budget or goal.
	ListContributionsByTarget(ctx context.Context, groupID, targetID string) ([]domain.FamilyContribution, error)

	// SumContributionsByTarget returns the total contributed to one shared
	// budget or goal, excluding rows from excludeUserID so the owner's own
	// ledger entries are never counted twice during spent derivation.
	SumContributionsByTarget(ctx context.Context, targetID, excludeUserID string) (decimal.Decimal, error)
}

// ContributionWriter defines the composite atomic units for family-scoped
// fund movements. Contribution rows are immutable; there is no update method.
type ContributionWriter interface {
	// SaveGoalContribution writes the personal ledger transaction, the
	// balance delta, the shared goal's new amounts, and exactly one
	// contribution row in a single unit.
	SaveGoalContribution(ctx context.Context, txn domain.Transaction, goal domain.Goal, contribution domain.FamilyContribution) error

	// SaveBudgetContribution writes the personal ledger transaction, the
	// balance delta, the shared budget's spent increment, and exactly one
	// contribution row in a single unit.
	SaveBudgetContribution(ctx context.Context, txn domain.Transaction, contribution domain.FamilyContribution) error

	// SaveContributionInTx inserts one contribution row inside a caller-owned
	// database transaction.
	SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.FamilyContribution) error
}

// ContributionRepositoryFacade combines contribution repository interfaces
type ContributionRepositoryFacade interface {
	ContributionReader
	ContributionWriter
}

// ContributionRepositoryWithTx extends ContributionRepositoryFacade with transaction capabilities
type ContributionRepositoryWithTx interface {
	ContributionRepositoryFacade
	TransactionManager
}
