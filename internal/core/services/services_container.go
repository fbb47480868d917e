package services

import (
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cacheStore portsrepo.CacheStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Category = NewCategoryService(repos.CategoryRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.UserRepo,
		container.Category,
		cacheStore,
		cfg.CacheListTTL,
		cfg.CacheItemTTL,
	)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.TransactionRepo,
		repos.ContributionRepo,
		container.Category,
	)

	container.Goal = NewGoalService(repos.GoalRepo, repos.UserRepo, cacheStore)

	container.Family = NewFamilyService(
		repos.GroupRepo,
		repos.ContributionRepo,
		repos.GoalRepo,
		repos.BudgetRepo,
		repos.UserRepo,
		cacheStore,
	)

	return container
}
