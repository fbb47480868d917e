package dto

import (
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest is the payload for creating a budget over a date window.
type CreateBudgetRequest struct {
	CategoryID  string          `json:"categoryID" binding:"required"`
	LimitAmount decimal.Decimal `json:"limitAmount" binding:"required"`
	StartDate   time.Time       `json:"startDate" binding:"required"`
	EndDate     time.Time       `json:"endDate" binding:"required"`
}

// UpdateBudgetRequest carries the patchable fields of a budget.
type UpdateBudgetRequest struct {
	LimitAmount *decimal.Decimal `json:"limitAmount,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID    string          `json:"budgetID"`
	CategoryID  string          `json:"categoryID"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	SpentAmount decimal.Decimal `json:"spentAmount"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		CategoryID:  b.CategoryID,
		LimitAmount: b.LimitAmount,
		SpentAmount: b.SpentAmount,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
	}
}

// ToBudgetResponses converts a slice of domain.Budget to DTOs.
func ToBudgetResponses(budgets []domain.Budget) []BudgetResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = ToBudgetResponse(&budgets[i])
	}
	return responses
}
