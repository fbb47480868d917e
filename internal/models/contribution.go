package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FamilyContribution represents a provenance row linking a personal
// transaction to the shared budget or goal it funded. There is no update path.
type FamilyContribution struct {
	ContributionID string          `db:"contribution_id"`
	TransactionID  string          `db:"transaction_id"`
	GroupID        string          `db:"group_id"`
	UserID         string          `db:"user_id"`
	Amount         decimal.Decimal `db:"amount"`
	Type           string          `db:"contribution_type"`
	TargetID       string          `db:"target_id"`
	CreatedAt      time.Time       `db:"created_at"`
}
