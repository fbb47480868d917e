package dto

import (
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest is the payload for creating a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
}

// UpdateGoalRequest carries the patchable fields of a goal.
type UpdateGoalRequest struct {
	Name         *string          `json:"name,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
}

// GoalFundsRequest is the payload for adding funds to or withdrawing funds
// from a goal.
type GoalFundsRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferFundsRequest is the payload for moving saved funds between two
// goals owned by the same user.
type TransferFundsRequest struct {
	TargetGoalID string          `json:"targetGoalID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse defines the data returned for a goal.
type GoalResponse struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Status       string          `json:"status"`
	DueDate      time.Time       `json:"dueDate"`
}

// ToGoalResponse converts a domain.Goal to its response DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:       g.GoalID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Status:       string(g.Status),
		DueDate:      g.DueDate,
	}
}

// ToGoalResponses converts a slice of domain.Goal to DTOs.
func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = ToGoalResponse(&goals[i])
	}
	return responses
}
