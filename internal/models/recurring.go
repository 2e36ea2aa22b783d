package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringExpense represents a recurring expense rule row.
type RecurringExpense struct {
	RecurringExpenseID string          `db:"recurring_expense_id"`
	UserID             string          `db:"user_id"`
	Name               string          `db:"name"`
	Amount             decimal.Decimal `db:"amount"`
	Frequency          string          `db:"frequency"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            *time.Time      `db:"end_date"` // Nullable
	AccountID          string          `db:"account_id"`
	CategoryID         string          `db:"category_id"` // Nullable
	AuditFields
}

// RecurringTransfer represents a recurring transfer rule row. Endpoints are
// stored decomposed into kind + id columns.
type RecurringTransfer struct {
	RecurringTransferID string          `db:"recurring_transfer_id"`
	UserID              string          `db:"user_id"`
	Name                string          `db:"name"`
	Amount              decimal.Decimal `db:"amount"`
	Frequency           string          `db:"frequency"`
	StartDate           time.Time       `db:"start_date"`
	EndDate             *time.Time      `db:"end_date"` // Nullable
	SourceKind          string          `db:"source_kind"`
	SourceID            string          `db:"source_id"`
	DestinationKind     string          `db:"destination_kind"`
	DestinationID       string          `db:"destination_id"`
	AuditFields
}
