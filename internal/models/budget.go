package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a budget row.
type Budget struct {
	BudgetID    string          `db:"budget_id"`
	UserID      string          `db:"user_id"`
	CategoryID  string          `db:"category_id"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
	SpentAmount decimal.Decimal `db:"spent_amount"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     time.Time       `db:"end_date"`
	AuditFields
}
