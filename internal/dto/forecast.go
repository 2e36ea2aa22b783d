package dto

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySnapshotResponse is one projected month of the forecast. Months are
// rendered as YYYY-MM.
type MonthlySnapshotResponse struct {
	Month           string                     `json:"month"`
	AccountBalances map[string]decimal.Decimal `json:"accountBalances"`
	ReserveBalances map[string]decimal.Decimal `json:"reserveBalances"`
	TotalBalance    decimal.Decimal            `json:"totalBalance"`
}

// ForecastResponse is the full projection over the forecast horizon.
type ForecastResponse struct {
	GeneratedAt time.Time                 `json:"generatedAt"`
	Snapshots   []MonthlySnapshotResponse `json:"snapshots"`
}

// ToForecastResponse converts a domain.Forecast to its response DTO.
func ToForecastResponse(f *domain.Forecast) ForecastResponse {
	out := ForecastResponse{
		GeneratedAt: f.GeneratedAt,
		Snapshots:   make([]MonthlySnapshotResponse, len(f.Snapshots)),
	}
	for i, s := range f.Snapshots {
		out.Snapshots[i] = MonthlySnapshotResponse{
			Month:           s.Month.Format("2006-01"),
			AccountBalances: s.AccountBalances,
			ReserveBalances: s.ReserveBalances,
			TotalBalance:    s.TotalBalance,
		}
	}
	return out
}

// ForecastTransactionsResponse is the merged real-plus-generated transaction
// list backing the forecast, newest first.
type ForecastTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
