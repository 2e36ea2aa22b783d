package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies how an account behaves in balance and forecast math.
type AccountType string

const (
	// Current is a regular checking account.
	Current AccountType = "CURRENT"
	// Savings is an interest-free savings bucket; treated like Current by the engine.
	Savings AccountType = "SAVINGS"
	// DeferredDebit is a credit-card-like account whose expenses settle in a
	// monthly lump sum on a linked checking account.
	DeferredDebit AccountType = "DEFERRED_DEBIT"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services and the forecast engine.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`    // Owning user (NON-NULL)
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Ledger balance as of account creation; signed
	Icon           string          `json:"icon"`           // Display metadata, opaque to the engine
	Color          string          `json:"color"`
	IsArchived     bool            `json:"isArchived"`

	// Deferred-debit settlement wiring. Only meaningful when AccountType is
	// DeferredDebit; LinkedAccountID must reference a non-deferred account.
	LinkedAccountID string `json:"linkedAccountID"`
	DebitDay        int    `json:"debitDay"` // Day of month (1-31) the statement sweeps

	AuditFields
}

// IsDeferredDebit reports whether the account settles through a linked account.
// Both the link and the settlement day must be present for the forecast
// generator to consider it.
func (a Account) IsDeferredDebit() bool {
	return a.AccountType == DeferredDebit && a.LinkedAccountID != "" && a.DebitDay >= 1 && a.DebitDay <= 31
}
