package domain

// Category labels transactions and budgets. Categories form a tree via
// ParentCategoryID; the engine only ever copies CategoryID around, it never
// walks the tree.
type Category struct {
	CategoryID       string `json:"categoryID"` // Primary Key (UUID)
	UserID           string `json:"userID"`
	Name             string `json:"name"`
	ParentCategoryID string `json:"parentCategoryID"` // Empty for root categories
	Icon             string `json:"icon"`

	AuditFields
}
