package domain

// Church represents a local congregation of the federation.
type Church struct {
	ChurchID string `json:"churchID"` // Primary Key (UUID)
	Name     string `json:"name"`
	City     string `json:"city"`
	Pastor   string `json:"pastor"` // Clergy metadata, display only
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"` // Soft-deactivation flag
	AuditFields
}
