package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionType tags which shared entity a contribution funded.
type ContributionType string

const (
	ContributionBudget ContributionType = "BUDGET"
	ContributionGoal   ContributionType = "GOAL"
)

// FamilyContribution links one personal ledger transaction to the shared
// budget or goal it funded. Rows are immutable once created.
type FamilyContribution struct {
	ContributionID string           `json:"contributionID"`
	TransactionID  string           `json:"transactionID"`
	GroupID        string           `json:"groupID"`
	UserID         string           `json:"userID"`
	Amount         decimal.Decimal  `json:"amount"`
	Type           ContributionType `json:"type"`
	TargetID       string           `json:"targetID"`
	CreatedAt      time.Time        `json:"createdAt"`
}
