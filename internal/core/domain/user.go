package domain

import "github.com/shopspring/decimal"

// User owns the single running balance the ledger maintains. The invariant
// balance == sum of the user's transaction amounts is kept incrementally; no
// code path outside the transaction repositories writes the balance.
type User struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}
