package pgsql

import (
	"context"
	"errors"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/famledger/family_finance_app/internal/models"
	"github.com/famledger/family_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGoalRepository struct {
	BaseRepository
	txnRepo  portsrepo.TransactionTxSupport
	userRepo portsrepo.UserBalanceSupport
}

// newPgxGoalRepository creates a new repository for goal data. The injected
// transaction and user repositories let fund movements compose the ledger
// insert and balance write into one database transaction.
func newPgxGoalRepository(pool *pgxpool.Pool, txnRepo portsrepo.TransactionTxSupport, userRepo portsrepo.UserBalanceSupport) portsrepo.GoalRepositoryWithTx {
	return &PgxGoalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		txnRepo:        txnRepo,
		userRepo:       userRepo,
	}
}

var _ portsrepo.GoalRepositoryWithTx = (*PgxGoalRepository)(nil)

const goalColumns = `goal_id, user_id, name, target_amount, saved_amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.SavedAmount,
		&m.Status,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveGoal persists a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (goal_id, user_id, name, target_amount, saved_amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.TargetAmount,
		m.SavedAmount,
		m.Status,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save goal "+m.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves one goal scoped to its owner.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID, userID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 AND user_id = $2;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	g := mapping.ToDomainGoal(*m)
	return &g, nil
}

// ListGoalsByUser retrieves all of a user's goals.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY due_date;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query goals for user "+userID, err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		m, err := scanGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan goal row", err)
		}
		goals = append(goals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating goal rows", err)
	}
	return mapping.ToDomainGoalSlice(goals), nil
}

// UpdateGoal updates a goal's name, target and due date, ownership-scoped.
// Saved amount and status are written only by the fund-support methods.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET name = $3,
		    target_amount = $4,
		    status = $5,
		    due_date = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE goal_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.TargetAmount,
		m.Status,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("goal " + m.GoalID + " not found for update")
	}
	return nil
}

// DeleteGoal removes a goal, ownership-scoped.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("goal " + goalID + " not found for delete")
	}
	return nil
}

// FindGoalByIDForUpdate selects the goal row and locks it inside the caller's
// transaction.
func (r *PgxGoalRepository) FindGoalByIDForUpdate(ctx context.Context, tx pgx.Tx, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 FOR UPDATE;`
	m, err := scanGoal(tx.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock goal "+goalID, err)
	}
	g := mapping.ToDomainGoal(*m)
	return &g, nil
}

// UpdateGoalAmountInTx writes the goal's saved amount and status inside the
// caller's transaction.
func (r *PgxGoalRepository) UpdateGoalAmountInTx(ctx context.Context, tx pgx.Tx, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET saved_amount = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE goal_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.GoalID,
		m.SavedAmount,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal amount for "+m.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("goal " + m.GoalID + " not found for amount update")
	}
	return nil
}

// SaveGoalFunding writes the paired ledger transaction, the balance delta and
// the goal's new amounts in one database transaction. The ledger row's signed
// amount is the only balance effect applied; there is no second direct
// decrement of the user record.
func (r *PgxGoalRepository) SaveGoalFunding(ctx context.Context, txn domain.Transaction, goal domain.Goal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID); err != nil {
		return err
	}
	if _, err := r.FindGoalByIDForUpdate(ctx, tx, goal.GoalID); err != nil {
		return err
	}

	if err := r.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, txn.UserID, txn.Amount); err != nil {
		return err
	}
	if err := r.UpdateGoalAmountInTx(ctx, tx, goal); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// TransferFunds writes both goals' new saved amounts and statuses in one
// database transaction. Rows are locked in goal-ID order to avoid deadlocks
// between crossing transfers.
func (r *PgxGoalRepository) TransferFunds(ctx context.Context, source, target domain.Goal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	first, second := source, target
	if second.GoalID < first.GoalID {
		first, second = second, first
	}
	if _, err := r.FindGoalByIDForUpdate(ctx, tx, first.GoalID); err != nil {
		return err
	}
	if _, err := r.FindGoalByIDForUpdate(ctx, tx, second.GoalID); err != nil {
		return err
	}

	if err := r.UpdateGoalAmountInTx(ctx, tx, source); err != nil {
		return err
	}
	if err := r.UpdateGoalAmountInTx(ctx, tx, target); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindGoalByIDAnyOwner retrieves a goal without scoping to an owner. Family
// contribution flows resolve shared goals through this path after the group
// membership check.
func (r *PgxGoalRepository) FindGoalByIDAnyOwner(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	g := mapping.ToDomainGoal(*m)
	return &g, nil
}
