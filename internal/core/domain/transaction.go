package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or subtracts from a balance.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionStatus separates booked ledger entries from forecast-only ones.
type TransactionStatus string

const (
	// Real transactions have affected the actual balance and are persisted.
	Real TransactionStatus = "REAL"
	// Potential transactions are derived from recurring rules on every read
	// and are never persisted. They must not count toward a current-balance
	// query.
	Potential TransactionStatus = "POTENTIAL"
)

// Transaction is the atomic ledger entry. Amount is always non-negative; the
// sign is carried by Type. Date is the nominal booking date; EffectiveDate is
// the value date used for all balance math (the two commonly differ for
// deferred-debit cards).
//
// All dates in the domain are calendar dates normalized to UTC midnight.
// There is no timezone conversion anywhere in the engine.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	UserID        string            `json:"userID"`
	AccountID     string            `json:"accountID"`
	ReserveID     string            `json:"reserveID,omitempty"`  // Optional sub-ledger tag
	CategoryID    string            `json:"categoryID,omitempty"` // Optional
	Amount        decimal.Decimal   `json:"amount"`               // Non-negative
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Date          time.Time         `json:"date"`
	EffectiveDate time.Time         `json:"effectiveDate"`
	Description   string            `json:"description"`

	// Linkage fields. TransferID pairs the two legs of one transfer. The
	// recurring ids record provenance back to the rule that generated the
	// occurrence, and double as the deduplication key together with Date.
	TransferID                   string `json:"transferID,omitempty"`
	RecurringExpenseID           string `json:"recurringExpenseID,omitempty"`
	RecurringTransferID          string `json:"recurringTransferID,omitempty"`
	ReimbursementID              string `json:"reimbursementID,omitempty"`
	DeferredDebitSourceAccountID string `json:"deferredDebitSourceAccountID,omitempty"`

	AuditFields
}

// SignedAmount returns the amount signed by transaction type: INCOME adds,
// EXPENSE subtracts.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
