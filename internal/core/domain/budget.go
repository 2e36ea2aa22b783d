package domain

import "github.com/shopspring/decimal"

// Budget is a monthly spending target for one category.
type Budget struct {
	BudgetID   string          `json:"budgetID"` // Primary Key (UUID)
	UserID     string          `json:"userID"`
	CategoryID string          `json:"categoryID"`
	Amount     decimal.Decimal `json:"amount"` // Budgeted amount per calendar month

	AuditFields
}

// BudgetReportRow compares a budget against real spending for one month.
type BudgetReportRow struct {
	CategoryID string          `json:"categoryID"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
}
