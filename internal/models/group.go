package models

// FamilyGroup represents a family group row.
type FamilyGroup struct {
	GroupID     string `db:"group_id"`
	Name        string `db:"name"`
	OwnerUserID string `db:"owner_user_id"`
	AuditFields
}
