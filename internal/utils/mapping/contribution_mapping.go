package mapping

import (
	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/models"
)

// ToModelContribution converts a domain FamilyContribution to its model
func ToModelContribution(d domain.FamilyContribution) models.FamilyContribution {
	return models.FamilyContribution{
		ContributionID: d.ContributionID,
		TransactionID:  d.TransactionID,
		GroupID:        d.GroupID,
		UserID:         d.UserID,
		Amount:         d.Amount,
		Type:           string(d.Type),
		TargetID:       d.TargetID,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainContribution converts a model FamilyContribution to its domain form
func ToDomainContribution(m models.FamilyContribution) domain.FamilyContribution {
	return domain.FamilyContribution{
		ContributionID: m.ContributionID,
		TransactionID:  m.TransactionID,
		GroupID:        m.GroupID,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Type:           domain.ContributionType(m.Type),
		TargetID:       m.TargetID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainContributionSlice converts model contributions to domain values
func ToDomainContributionSlice(ms []models.FamilyContribution) []domain.FamilyContribution {
	out := make([]domain.FamilyContribution, len(ms))
	for i, m := range ms {
		out[i] = ToDomainContribution(m)
	}
	return out
}
