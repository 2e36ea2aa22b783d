package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a real ledger entry row. Only REAL transactions are
// persisted; generated potential transactions never touch the database. The
// provenance columns are NULL unless the row was created by validating an
// occurrence or settling a reimbursement.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	ReserveID     string          `db:"reserve_id"`  // Nullable
	CategoryID    string          `db:"category_id"` // Nullable
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Date          time.Time       `db:"date"`
	EffectiveDate time.Time       `db:"effective_date"`
	Description   string          `db:"description"`

	TransferID                   string `db:"transfer_id"`                      // Nullable
	RecurringExpenseID           string `db:"recurring_expense_id"`             // Nullable
	RecurringTransferID          string `db:"recurring_transfer_id"`            // Nullable
	ReimbursementID              string `db:"reimbursement_id"`                 // Nullable
	DeferredDebitSourceAccountID string `db:"deferred_debit_source_account_id"` // Nullable

	AuditFields
}
