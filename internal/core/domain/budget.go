package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget tracks spending against a limit for one expense category over a date
// window. SpentAmount is derived from the ledger; it may drift between writes
// and is healed by the reconciliation job.
type Budget struct {
	BudgetID    string          `json:"budgetID"`
	UserID      string          `json:"userID"`
	CategoryID  string          `json:"categoryID"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	SpentAmount decimal.Decimal `json:"spentAmount"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	AuditFields
}

// IsActiveAt reports whether the budget window contains the given instant.
func (b Budget) IsActiveAt(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}

// OverlapsMonth reports whether the budget window intersects the calendar
// month containing t: it starts in the month, ends in the month, or spans it.
func (b Budget) OverlapsMonth(t time.Time) bool {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	startsInMonth := !b.StartDate.Before(monthStart) && !b.StartDate.After(monthEnd)
	endsInMonth := !b.EndDate.Before(monthStart) && !b.EndDate.After(monthEnd)
	spansMonth := b.StartDate.Before(monthStart) && b.EndDate.After(monthEnd)

	return startsInMonth || endsInMonth || spansMonth
}
