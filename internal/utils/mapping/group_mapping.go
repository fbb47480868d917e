package mapping

import (
	"github.com/famledger/family_finance_app/internal/core/domain"
	"github.com/famledger/family_finance_app/internal/models"
)

// ToModelFamilyGroup converts a domain FamilyGroup to its model
func ToModelFamilyGroup(d domain.FamilyGroup) models.FamilyGroup {
	return models.FamilyGroup{
		GroupID:     d.GroupID,
		Name:        d.Name,
		OwnerUserID: d.OwnerUserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFamilyGroup converts a model FamilyGroup to its domain form
func ToDomainFamilyGroup(m models.FamilyGroup) domain.FamilyGroup {
	return domain.FamilyGroup{
		GroupID:     m.GroupID,
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
