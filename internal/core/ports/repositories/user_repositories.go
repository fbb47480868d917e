package repositories

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, for login.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details. The balance column is
	// deliberately excluded; only balance-support methods touch it.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserBalanceSupport defines the only write path to the running balance.
// Both methods participate in a caller-owned database transaction.
type UserBalanceSupport interface {
	// FindUserByIDForUpdate selects the user row and locks it for update.
	FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)

	// IncrementUserBalanceInTx applies a signed delta to the locked balance.
	IncrementUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserBalanceSupport
}
