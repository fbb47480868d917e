package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus reflects progress toward the target amount.
type GoalStatus string

const (
	GoalPending    GoalStatus = "PENDING"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
)

// Goal is a savings goal funded from the user's balance via ledger
// transactions against the reserved goal categories.
type Goal struct {
	GoalID       string          `json:"goalID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Status       GoalStatus      `json:"status"`
	DueDate      time.Time       `json:"dueDate"`
	AuditFields
}

// GoalStatusFor computes the status as a pure function of the amounts:
// COMPLETED once saved reaches target, IN_PROGRESS for any positive saved
// amount below target, PENDING otherwise.
func GoalStatusFor(saved, target decimal.Decimal) GoalStatus {
	switch {
	case saved.GreaterThanOrEqual(target):
		return GoalCompleted
	case saved.GreaterThan(decimal.Zero):
		return GoalInProgress
	default:
		return GoalPending
	}
}
