package pgsql

import (
	"context"
	"errors"
	"fmt"
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

type PgxTransactionRepository struct {
	BaseRepository
	userRepo portsrepo.UserBalanceSupport
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool, userRepo portsrepo.UserBalanceSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, category_id, amount, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRows(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.TransactionID,
			&t.UserID,
			&t.CategoryID,
			&t.Amount,
			&t.Description,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return transactions, nil
}

// SaveTransaction inserts the ledger entry and applies balanceDelta to the
// owner's balance within one database transaction. The user row is locked
// first so concurrent writes against the same balance serialize.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID); err != nil {
		return err
	}

	if err := r.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}

	if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, txn.UserID, balanceDelta); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransactionInTx inserts the ledger row inside the caller's transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, user_id, category_id, amount, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// UpdateTransaction persists the patched entry and applies the recomputed
// balance adjustment in one unit.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceAdjustment decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID); err != nil {
		return err
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET category_id = $3,
		    amount = $4,
		    description = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE transaction_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID + " not found for update")
	}

	if !balanceAdjustment.IsZero() {
		if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, txn.UserID, balanceAdjustment); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the entry and applies balanceAdjustment (the
// negated stored amount) in one unit.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, userID string, balanceAdjustment decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, userID); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Contribution rows keep their ledger entry as provenance; the
			// entry stays until the contribution record goes.
			return fmt.Errorf("%w: transaction %s is referenced by a family contribution", apperrors.ErrConflict, transactionID)
		}
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for delete")
	}

	if err := r.userRepo.IncrementUserBalanceInTx(ctx, tx, userID, balanceAdjustment); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves one transaction scoped to its owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	var t models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID, userID).Scan(
		&t.TransactionID,
		&t.UserID,
		&t.CategoryID,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(t)
	return &d, nil
}

// ListTransactionsByUser retrieves all of a user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	ms, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactionsByDateRange retrieves transactions created within [from, to].
func (r *PgxTransactionRepository) ListTransactionsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions by date range for user "+userID, err)
	}
	ms, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactionsByCategory retrieves a user's transactions for one category.
func (r *PgxTransactionRepository) ListTransactionsByCategory(ctx context.Context, userID, categoryID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND category_id = $2 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID, categoryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions by category for user "+userID, err)
	}
	ms, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactionsByType retrieves income-only or expense-only entries by
// joining the category directory on its type.
func (r *PgxTransactionRepository) ListTransactionsByType(ctx context.Context, userID string, categoryType domain.CategoryType) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.user_id, t.category_id, t.amount, t.description, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.user_id = $1 AND c.type = $2
		ORDER BY t.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(categoryType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions by type for user "+userID, err)
	}
	ms, err := scanTransactionRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// SummarizeByCategory groups a user's ledger by category with totals and counts.
func (r *PgxTransactionRepository) SummarizeByCategory(ctx context.Context, userID string) ([]domain.CategorySummary, error) {
	query := `
		SELECT c.category_id, c.name, c.type, COALESCE(SUM(t.amount), 0), COUNT(t.transaction_id)
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.user_id = $1
		GROUP BY c.category_id, c.name, c.type
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query category summary for user "+userID, err)
	}
	defer rows.Close()

	summaries := []domain.CategorySummary{}
	for rows.Next() {
		var s domain.CategorySummary
		var categoryType string
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &categoryType, &s.Total, &s.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category summary row", err)
		}
		s.CategoryType = domain.CategoryType(categoryType)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category summary rows", err)
	}
	return summaries, nil
}

// SumAmountByCategoryAndRange returns the signed sum of amounts for a
// category within [from, to].
func (r *PgxTransactionRepository) SumAmountByCategoryAndRange(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND created_at >= $3 AND created_at <= $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, categoryID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum transactions for category "+categoryID, err)
	}
	return sum, nil
}
