package domain

// FamilyGroup is the minimal directory entry shared budgets and goals hang
// off. Invitation workflow lives outside the ledger core.
type FamilyGroup struct {
	GroupID     string `json:"groupID"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserID"`
	AuditFields
}
