package cache

import "fmt"

// Key shapes for the read-through ledger cache. Every key embeds the owning
// user's ID so invalidation never crosses users.

// ListKey caches the full transaction list.
func ListKey(userID string) string {
	return fmt.Sprintf("txns:list:%s", userID)
}

// MonthKey caches one calendar month of transactions. The month label is
// formatted as "2006-01".
func MonthKey(userID, month string) string {
	return fmt.Sprintf("txns:month:%s:%s", userID, month)
}

// IncomeKey caches the income-only list.
func IncomeKey(userID string) string {
	return fmt.Sprintf("txns:income:%s", userID)
}

// ExpenseKey caches the expense-only list.
func ExpenseKey(userID string) string {
	return fmt.Sprintf("txns:expense:%s", userID)
}

// CategoryKey caches one category's transaction list.
func CategoryKey(userID, categoryID string) string {
	return fmt.Sprintf("txns:cat:%s:%s", userID, categoryID)
}

// ItemKey caches a single transaction.
func ItemKey(userID, transactionID string) string {
	return fmt.Sprintf("txn:item:%s:%s", userID, transactionID)
}

// SummaryKey caches the per-category summary.
func SummaryKey(userID string) string {
	return fmt.Sprintf("txns:summary:%s", userID)
}
