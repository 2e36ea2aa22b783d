package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySnapshot is the projected position at the end of one calendar month.
// Invariant: TotalBalance equals the sum of AccountBalances.
type MonthlySnapshot struct {
	Month           time.Time                  `json:"month"` // First day of the month, UTC midnight
	AccountBalances map[string]decimal.Decimal `json:"accountBalances"`
	ReserveBalances map[string]decimal.Decimal `json:"reserveBalances"`
	TotalBalance    decimal.Decimal            `json:"totalBalance"`
}

// Forecast is the full projected series over the rolling horizon.
type Forecast struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Snapshots   []MonthlySnapshot `json:"snapshots"`
}
