package models

import "github.com/shopspring/decimal"

// Budget represents a monthly category budget row.
type Budget struct {
	BudgetID   string          `db:"budget_id"`
	UserID     string          `db:"user_id"`
	CategoryID string          `db:"category_id"`
	Amount     decimal.Decimal `db:"amount"`
	AuditFields
}
