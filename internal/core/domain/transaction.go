package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single signed entry in the ledger. The stored amount is
// negative for EXPENSE categories and positive for INCOME categories; it is
// never zero.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	CategoryID    string          `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"` // Signed; derived from the category type
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	AuditFields
}

// SignedAmount derives the stored signed amount from a positive input amount
// and the resolved category type.
func SignedAmount(amount decimal.Decimal, categoryType CategoryType) decimal.Decimal {
	if categoryType == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// CategorySummary is one row of the per-category grouped ledger summary.
type CategorySummary struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType CategoryType    `json:"categoryType"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}
