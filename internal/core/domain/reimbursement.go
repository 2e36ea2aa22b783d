package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementStatus is the settlement state of an expected reimbursement.
type ReimbursementStatus string

const (
	ReimbursementPending  ReimbursementStatus = "PENDING"
	ReimbursementReceived ReimbursementStatus = "RECEIVED"
)

// Reimbursement links an original EXPENSE transaction to an expected future
// INCOME. While PENDING it contributes exactly one generated potential
// transaction; once RECEIVED it contributes none, because the real settlement
// transaction exists.
type Reimbursement struct {
	ReimbursementID     string              `json:"reimbursementID"` // Primary Key (UUID)
	UserID              string              `json:"userID"`
	SourceTransactionID string              `json:"sourceTransactionID"` // The original expense
	Status              ReimbursementStatus `json:"status"`
	ExpectedAmount      decimal.Decimal     `json:"expectedAmount"`
	ExpectedDate        time.Time           `json:"expectedDate"`

	// Set once settled.
	ReceivedAmount        *decimal.Decimal `json:"receivedAmount,omitempty"`
	ReceivedDate          *time.Time       `json:"receivedDate,omitempty"`
	ReceivedTransactionID string           `json:"receivedTransactionID,omitempty"`

	AuditFields
}
