package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a bank account row. LinkedAccountID is NULL except for
// deferred debit accounts.
type Account struct {
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	InitialBalance  decimal.Decimal `db:"initial_balance"`
	Icon            string          `db:"icon"`
	Color           string          `db:"color"`
	IsArchived      bool            `db:"is_archived"`
	LinkedAccountID string          `db:"linked_account_id"` // Nullable
	DebitDay        int             `db:"debit_day"`         // 0 when not deferred debit
	AuditFields
}
