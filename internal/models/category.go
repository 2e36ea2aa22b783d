package models

// Category represents a category row. ParentCategoryID is NULL for top-level
// categories.
type Category struct {
	CategoryID       string `db:"category_id"`
	UserID           string `db:"user_id"`
	Name             string `db:"name"`
	ParentCategoryID string `db:"parent_category_id"` // Nullable
	Icon             string `db:"icon"`
	AuditFields
}
