package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reimbursement represents an expected reimbursement row. The received
// columns are NULL while the reimbursement is pending.
type Reimbursement struct {
	ReimbursementID       string           `db:"reimbursement_id"`
	UserID                string           `db:"user_id"`
	SourceTransactionID   string           `db:"source_transaction_id"`
	Status                string           `db:"status"`
	ExpectedAmount        decimal.Decimal  `db:"expected_amount"`
	ExpectedDate          time.Time        `db:"expected_date"`
	ReceivedAmount        *decimal.Decimal `db:"received_amount"`         // Nullable
	ReceivedDate          *time.Time       `db:"received_date"`           // Nullable
	ReceivedTransactionID string           `db:"received_transaction_id"` // Nullable
	AuditFields
}
