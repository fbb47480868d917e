package services

import (
	"context"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

// CategorySvcFacade exposes the read-only category directory. The ledger core
// looks categories up and never mutates them.
type CategorySvcFacade interface {
	// GetCategoryByID retrieves a category by its ID.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all directory entries.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
