package models

import "github.com/shopspring/decimal"

// User represents a user row. Balance is the running ledger balance; it is
// written only inside transaction-repository atomic units.
type User struct {
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
}
