package models

// CategoryType is stored as text with a CHECK constraint on the two variants.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Category represents a category directory row.
type Category struct {
	CategoryID string       `db:"category_id"`
	Name       string       `db:"name"`
	Type       CategoryType `db:"type"`
	AuditFields
}
