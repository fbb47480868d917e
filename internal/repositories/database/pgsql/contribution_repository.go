package pgsql

import (
	"context"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/famledger/family_finance_app/internal/models"
	"github.com/famledger/family_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxContributionRepository struct {
	BaseRepository
	txnRepo    portsrepo.TransactionTxSupport
	userRepo   portsrepo.UserBalanceSupport
	goalRepo   portsrepo.GoalFundSupport
	budgetRepo portsrepo.BudgetTxSupport
}

// newPgxContributionRepository creates a new repository for family
// contribution provenance. The injected repositories let the composite save
// methods assemble the whole fund movement into one database transaction.
func newPgxContributionRepository(pool *pgxpool.Pool, txnRepo portsrepo.TransactionTxSupport, userRepo portsrepo.UserBalanceSupport, goalRepo portsrepo.GoalFundSupport, budgetRepo portsrepo.BudgetTxSupport) portsrepo.ContributionRepositoryWithTx {
	return &PgxContributionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		txnRepo:        txnRepo,
		userRepo:       userRepo,
		goalRepo:       goalRepo,
		budgetRepo:     budgetRepo,
	}
}

var _ portsrepo.ContributionRepositoryWithTx = (*PgxContributionRepository)(nil)

const contributionColumns = `contribution_id, transaction_id, group_id, user_id, amount, contribution_type, target_id, created_at`

// SaveContributionInTx inserts one provenance row inside the caller's
// transaction. Contribution rows are never updated afterwards.
func (r *PgxContributionRepository) SaveContributionInTx(ctx context.Context, tx pgx.Tx, contribution domain.FamilyContribution) error {
	m := mapping.ToModelContribution(contribution)
	query := `
		INSERT INTO family_transaction_contributions (contribution_id, transaction_id, group_id, user_id, amount, contribution_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.ContributionID,
		m.TransactionID,
		m.GroupID,
		m.UserID,
		m.Amount,
		m.Type,
		m.TargetID,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert contribution "+m.ContributionID, err)
	}
	return nil
}

// SaveGoalContribution writes the personal ledger transaction, the balance
// delta, the shared goal's new amounts, and exactly one contribution row in a
// single database transaction.
func (r *PgxContributionRepository) SaveGoalContribution(ctx context.Context, txn domain.Transaction, goal domain.Goal, contribution domain.FamilyContribution) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID); err != nil {
		return err
	}
	if _, err := r.goalRepo.FindGoalByIDForUpdate(ctx, tx, goal.GoalID); err != nil {
		return err
	}

	if err := r.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, txn.UserID, txn.Amount); err != nil {
		return err
	}
	if err := r.goalRepo.UpdateGoalAmountInTx(ctx, tx, goal); err != nil {
		return err
	}
	if err := r.SaveContributionInTx(ctx, tx, contribution); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveBudgetContribution writes the personal ledger transaction, the balance
// delta, the shared budget's spent increment, and exactly one contribution
// row in a single database transaction.
func (r *PgxContributionRepository) SaveBudgetContribution(ctx context.Context, txn domain.Transaction, contribution domain.FamilyContribution) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID); err != nil {
		return err
	}
	if _, err := r.budgetRepo.FindBudgetByIDForUpdate(ctx, tx, contribution.TargetID); err != nil {
		return err
	}

	if err := r.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, txn.UserID, txn.Amount); err != nil {
		return err
	}
	if err := r.budgetRepo.IncrementSpentAmountInTx(ctx, tx, contribution.TargetID, contribution.Amount, txn.UserID, txn.CreatedAt); err != nil {
		return err
	}
	if err := r.SaveContributionInTx(ctx, tx, contribution); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxContributionRepository) queryContributions(ctx context.Context, query string, args ...any) ([]domain.FamilyContribution, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contributions", err)
	}
	defer rows.Close()

	contributions := []models.FamilyContribution{}
	for rows.Next() {
		var m models.FamilyContribution
		if err := rows.Scan(
			&m.ContributionID,
			&m.TransactionID,
			&m.GroupID,
			&m.UserID,
			&m.Amount,
			&m.Type,
			&m.TargetID,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contribution row", err)
		}
		contributions = append(contributions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contribution rows", err)
	}
	return mapping.ToDomainContributionSlice(contributions), nil
}

// ListContributionsByGroup retrieves a group's contributions, newest first.
func (r *PgxContributionRepository) ListContributionsByGroup(ctx context.Context, groupID string) ([]domain.FamilyContribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM family_transaction_contributions WHERE group_id = $1 ORDER BY created_at DESC;`
	return r.queryContributions(ctx, query, groupID)
}

// ListContributionsByTarget retrieves contributions against one shared
// budget or goal.
func (r *PgxContributionRepository) ListContributionsByTarget(ctx context.Context, groupID, targetID string) ([]domain.FamilyContribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM family_transaction_contributions WHERE group_id = $1 AND target_id = $2 ORDER BY created_at DESC;`
	return r.queryContributions(ctx, query, groupID, targetID)
}

// SumContributionsByTarget totals contributions against one shared budget or
// goal, excluding the given user's rows.
func (r *PgxContributionRepository) SumContributionsByTarget(ctx context.Context, targetID, excludeUserID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM family_transaction_contributions WHERE target_id = $1 AND user_id <> $2;`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, targetID, excludeUserID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum contributions for target "+targetID, err)
	}
	return total, nil
}
