package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/famledger/family_finance_app/internal/models"
	"github.com/famledger/family_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, user_id, category_id, limit_amount, spent_amount, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.CategoryID,
		&m.LimitAmount,
		&m.SpentAmount,
		&m.StartDate,
		&m.EndDate,
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

func (r *PgxBudgetRepository) queryBudgets(ctx context.Context, query string, args ...any) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budgets", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
		}
		budgets = append(budgets, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget rows", err)
	}
	return mapping.ToDomainBudgetSlice(budgets), nil
}

// SaveBudget persists a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, user_id, category_id, limit_amount, spent_amount, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		m.CategoryID,
		m.LimitAmount,
		m.SpentAmount,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save budget "+m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves one budget scoped to its owner.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID, userID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget by ID "+budgetID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}

// ListBudgetsByUser retrieves all of a user's budgets.
func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY start_date DESC;`
	return r.queryBudgets(ctx, query, userID)
}

// ListCurrentBudgets retrieves budgets whose window contains asOf.
func (r *PgxBudgetRepository) ListCurrentBudgets(ctx context.Context, userID string, asOf time.Time) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND start_date <= $2 AND end_date >= $2 ORDER BY start_date DESC;`
	return r.queryBudgets(ctx, query, userID, asOf)
}

// ListMonthOverlappingBudgets retrieves budgets whose window intersects the
// calendar month containing monthOf: they start in the month, end in the
// month, or span it.
func (r *PgxBudgetRepository) ListMonthOverlappingBudgets(ctx context.Context, userID string, monthOf time.Time) ([]domain.Budget, error) {
	monthStart := time.Date(monthOf.Year(), monthOf.Month(), 1, 0, 0, 0, 0, monthOf.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		  AND ((start_date >= $2 AND start_date <= $3)
		    OR (end_date >= $2 AND end_date <= $3)
		    OR (start_date < $2 AND end_date > $3))
		ORDER BY start_date DESC;
	`
	return r.queryBudgets(ctx, query, userID, monthStart, monthEnd)
}

// FindActiveBudgets retrieves every budget, across all users, whose window
// contains asOf. Used by the reconciliation job.
func (r *PgxBudgetRepository) FindActiveBudgets(ctx context.Context, asOf time.Time) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE start_date <= $1 AND end_date >= $1 ORDER BY budget_id;`
	return r.queryBudgets(ctx, query, asOf)
}

// UpdateBudget updates a budget's category, limit and window, ownership-scoped.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET category_id = $3,
		    limit_amount = $4,
		    start_date = $5,
		    end_date = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE budget_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		m.CategoryID,
		m.LimitAmount,
		m.StartDate,
		m.EndDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget "+m.BudgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget " + m.BudgetID + " not found for update")
	}
	return nil
}

// DeleteBudget removes a budget, ownership-scoped.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`, budgetID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget "+budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget " + budgetID + " not found for delete")
	}
	return nil
}

// UpdateSpentAmount sets spent_amount directly, ownership-scoped.
func (r *PgxBudgetRepository) UpdateSpentAmount(ctx context.Context, budgetID, userID string, spent decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE budget_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, budgetID, userID, spent, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set spent amount for budget "+budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget " + budgetID + " not found for spent update")
	}
	return nil
}

// IncrementSpentAmount atomically adds delta to spent_amount, ownership-scoped.
func (r *PgxBudgetRepository) IncrementSpentAmount(ctx context.Context, budgetID, userID string, delta decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = spent_amount + $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE budget_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, budgetID, userID, delta, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment spent amount for budget "+budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget " + budgetID + " not found for spent increment")
	}
	return nil
}

// FindBudgetByIDForUpdate selects the budget row and locks it inside the
// caller's transaction.
func (r *PgxBudgetRepository) FindBudgetByIDForUpdate(ctx context.Context, tx pgx.Tx, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1 FOR UPDATE;`
	m, err := scanBudget(tx.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock budget "+budgetID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}

// IncrementSpentAmountInTx adds delta to the locked budget's spent_amount.
func (r *PgxBudgetRepository) IncrementSpentAmountInTx(ctx context.Context, tx pgx.Tx, budgetID string, delta decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = spent_amount + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE budget_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, budgetID, delta, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment spent amount for budget "+budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget " + budgetID + " not found for spent increment")
	}
	return nil
}

// FindBudgetByIDAnyOwner retrieves a budget without scoping to an owner.
// Family contribution flows resolve shared budgets through this path after
// the group membership check.
func (r *PgxBudgetRepository) FindBudgetByIDAnyOwner(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget by ID "+budgetID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}
