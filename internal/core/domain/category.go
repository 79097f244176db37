package domain

// CategoryKind separates income from expense categories.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "INCOME"
	CategoryExpense CategoryKind = "EXPENSE"
)

// TransactionCategory is a seeded taxonomy entry used to classify expenses
// and movements. Never deleted once referenced; deactivated instead.
type TransactionCategory struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	ParentID   *string      `json:"parentID,omitempty"`
	IsActive   bool         `json:"isActive"`
	AuditFields
}
