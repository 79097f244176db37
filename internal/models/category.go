package models

// TransactionCategory represents a transaction_categories row.
type TransactionCategory struct {
	CategoryID string  `db:"category_id"`
	Name       string  `db:"name"`
	Kind       string  `db:"kind"`
	ParentID   *string `db:"parent_id"`
	IsActive   bool    `db:"is_active"`
	AuditFields
}
