package repositories

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

// GroupReader defines read operations for family group data
type GroupReader interface {
	// FindGroupByID retrieves a group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.FamilyGroup, error)

	// ListGroupsByUser retrieves the groups a user belongs to.
	ListGroupsByUser(ctx context.Context, userID string) ([]domain.FamilyGroup, error)

	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

// GroupWriter defines write operations for family group data
type GroupWriter interface {
	// SaveGroup persists a new group and enrolls the owner as a member.
	SaveGroup(ctx context.Context, group domain.FamilyGroup) error

	// AddMember enrolls a user into a group.
	AddMember(ctx context.Context, groupID, userID string) error
}

// GroupRepositoryFacade combines family group repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}

// GroupRepositoryWithTx extends GroupRepositoryFacade with transaction capabilities
type GroupRepositoryWithTx interface {
	GroupRepositoryFacade
	TransactionManager
}
