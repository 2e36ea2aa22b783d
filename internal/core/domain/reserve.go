package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reserve is a named virtual sub-balance ("envelope") within exactly one account.
// A reserve's balance is always a subset of its owning account's balance:
// transactions tagged with a ReserveID carry the same AccountID as the
// reserve's owner. The engine assumes this invariant, it does not verify it.
type Reserve struct {
	ReserveID string `json:"reserveID"` // Primary Key (UUID)
	UserID    string `json:"userID"`
	AccountID string `json:"accountID"` // Owning account (NON-NULL)
	Name      string `json:"name"`
	Icon      string `json:"icon"`

	// Optional goal tracking.
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetDate   *time.Time       `json:"targetDate,omitempty"`

	AuditFields
}
