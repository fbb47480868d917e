package domain

// CategoryType is the closed two-variant kind of a category. It is resolved
// once at the persistence boundary and propagated as a typed value.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Valid reports whether the value is one of the two known variants.
func (t CategoryType) Valid() bool {
	return t == Income || t == Expense
}

// Reserved category IDs used for goal fund movements. Seeded by migration;
// the category directory never deletes them.
const (
	GoalFundingCategoryID    = "cat-goal-funding"
	GoalWithdrawalCategoryID = "cat-goal-withdrawal"
)

// Category is a directory entry transactions and budgets reference.
// The ledger core only ever reads categories.
type Category struct {
	CategoryID string       `json:"categoryID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	AuditFields
}
