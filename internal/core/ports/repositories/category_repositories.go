package repositories

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

// CategoryReader defines the read-only category directory lookup the ledger
// core consumes.
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all directory entries.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations used only by directory seeding and
// the excluded category CRUD surface.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
