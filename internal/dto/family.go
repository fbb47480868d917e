package dto

import (
	"time"

	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGroupRequest is the payload for creating a family group.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// ContributionRequest is the payload for contributing to a shared budget or
// goal on behalf of a family group.
type ContributionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// GroupResponse defines the data returned for a family group.
type GroupResponse struct {
	GroupID     string `json:"groupID"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserID"`
}

// ContributionResponse defines the provenance data returned for one
// contribution: who, how much, when, against which target.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	TransactionID  string          `json:"transactionID"`
	GroupID        string          `json:"groupID"`
	UserID         string          `json:"userID"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"`
	TargetID       string          `json:"targetID"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToGroupResponse converts a domain.FamilyGroup to its response DTO.
func ToGroupResponse(g *domain.FamilyGroup) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		Name:        g.Name,
		OwnerUserID: g.OwnerUserID,
	}
}

// ToContributionResponse converts a domain.FamilyContribution to its DTO.
func ToContributionResponse(c *domain.FamilyContribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		TransactionID:  c.TransactionID,
		GroupID:        c.GroupID,
		UserID:         c.UserID,
		Amount:         c.Amount,
		Type:           string(c.Type),
		TargetID:       c.TargetID,
		CreatedAt:      c.CreatedAt,
	}
}

// ToContributionResponses converts a slice of contributions to DTOs.
func ToContributionResponses(cs []domain.FamilyContribution) []ContributionResponse {
	responses := make([]ContributionResponse, len(cs))
	for i := range cs {
		responses[i] = ToContributionResponse(&cs[i])
	}
	return responses
}
