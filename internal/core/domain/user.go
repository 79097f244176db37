package domain

// User is a stored principal record. Role and church assignment are mutable
// only through an admin action; changing them never rewrites historical
// attribution on reports or transactions.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	ChurchID     *string `json:"churchID,omitempty"` // Required for church-scoped roles
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// FundAssignment links a fund director to one of their funds.
type FundAssignment struct {
	UserID string `json:"userID"`
	FundID string `json:"fundID"`
}
