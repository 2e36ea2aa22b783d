package domain

// User is an authenticated owner of accounts, rules and transactions.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`

	AuditFields
}
