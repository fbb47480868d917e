package pgsql

import (
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, userRepo)
	budgetRepo := newPgxBudgetRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool, transactionRepo, userRepo)
	contributionRepo := newPgxContributionRepository(dbPool, transactionRepo, userRepo, goalRepo, budgetRepo)
	groupRepo := newPgxGroupRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		CategoryRepo:     categoryRepo,
		TransactionRepo:  transactionRepo,
		BudgetRepo:       budgetRepo,
		GoalRepo:         goalRepo,
		ContributionRepo: contributionRepo,
		GroupRepo:        groupRepo,
	}
}
