package models

import "github.com/shopspring/decimal"

// Transaction represents a ledger entry row. Amount is signed and nonzero.
// The entry timestamp is the audit created_at column.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	CategoryID    string          `db:"category_id"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	AuditFields
}
