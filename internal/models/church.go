package models

// Church represents a local congregation row.
type Church struct {
	ChurchID string `db:"church_id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	Pastor   string `db:"pastor"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
