package dto

import (
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for recording a ledger entry.
// Amount is the positive input figure; the stored sign is derived from the
// category type, never supplied by the caller.
type CreateTransactionRequest struct {
	CategoryID  string          `json:"categoryID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// UpdateTransactionRequest carries the patchable fields of a transaction.
// Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	CategoryID  *string          `json:"categoryID,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	CategoryID    string          `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CreateTransactionResponse pairs the stored transaction with the balance
// after the write committed.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// CategorySummaryResponse is one row of the grouped per-category summary.
type CategorySummaryResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		CategoryID:    t.CategoryID,
		Amount:        t.Amount,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToCategorySummaryResponses converts domain summary rows to DTOs.
func ToCategorySummaryResponses(rows []domain.CategorySummary) []CategorySummaryResponse {
	responses := make([]CategorySummaryResponse, len(rows))
	for i, r := range rows {
		responses[i] = CategorySummaryResponse{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			CategoryType: string(r.CategoryType),
			Total:        r.Total,
			Count:        r.Count,
		}
	}
	return responses
}
