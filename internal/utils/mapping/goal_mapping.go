package mapping

import (
	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/models"
)

// ToModelGoal converts a domain Goal to a model Goal
func ToModelGoal(d domain.Goal) models.Goal {
	return models.Goal{
		GoalID:       d.GoalID,
		UserID:       d.UserID,
		Name:         d.Name,
		TargetAmount: d.TargetAmount,
		SavedAmount:  d.SavedAmount,
		Status:       string(d.Status),
		DueDate:      d.DueDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGoal converts a model Goal to a domain Goal
func ToDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:       m.GoalID,
		UserID:       m.UserID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		SavedAmount:  m.SavedAmount,
		Status:       domain.GoalStatus(m.Status),
		DueDate:      m.DueDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGoalSlice converts a slice of model Goals to domain Goals
func ToDomainGoalSlice(ms []models.Goal) []domain.Goal {
	out := make([]domain.Goal, len(ms))
	for i, m := range ms {
		out[i] = ToDomainGoal(m)
	}
	return out
}
