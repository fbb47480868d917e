package services

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// FamilyGroupSvc manages the minimal group directory contributions hang off.
type FamilyGroupSvc interface {
	// CreateGroup creates a group owned by the caller.
	CreateGroup(ctx context.Context, userID string, req dto.CreateGroupRequest) (*domain.FamilyGroup, error)

	// ListGroups retrieves the groups the caller belongs to.
	ListGroups(ctx context.Context, userID string) ([]domain.FamilyGroup, error)
}

// FamilyContributionSvc wraps goal and budget fund movements for shared
// entities, recording one immutable provenance row per contribution.
type FamilyContributionSvc interface {
	// ContributeToGoal adds funds to a shared goal on behalf of a group.
	ContributeToGoal(ctx context.Context, userID, groupID, goalID string, amount decimal.Decimal, description string) (*domain.FamilyContribution, error)

	// ContributeToBudget records spending against a shared budget.
	ContributeToBudget(ctx context.Context, userID, groupID, budgetID string, amount decimal.Decimal, description string) (*domain.FamilyContribution, error)

	// ListGroupContributions reconstructs a group's full provenance.
	ListGroupContributions(ctx context.Context, userID, groupID string) ([]domain.FamilyContribution, error)
}

// FamilySvcFacade combines family group and contribution interfaces
type FamilySvcFacade interface {
	FamilyGroupSvc
	FamilyContributionSvc
}
