package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reserve represents a virtual sub-balance row.
type Reserve struct {
	ReserveID    string           `db:"reserve_id"`
	UserID       string           `db:"user_id"`
	AccountID    string           `db:"account_id"`
	Name         string           `db:"name"`
	Icon         string           `db:"icon"`
	TargetAmount *decimal.Decimal `db:"target_amount"` // Nullable
	TargetDate   *time.Time       `db:"target_date"`   // Nullable
	AuditFields
}
