package models

// User represents a user row. ChurchID is nullable for national roles.
type User struct {
	UserID       string  `db:"user_id"`
	Email        string  `db:"email"`
	Name         string  `db:"name"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	ChurchID     *string `db:"church_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}
