package dto

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReserveRequest defines the data needed to create a reserve.
type CreateReserveRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Name         string           `json:"name" binding:"required"`
	Icon         string           `json:"icon"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	TargetDate   *string          `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateReserveRequest defines the data allowed for updating a reserve.
type UpdateReserveRequest struct {
	Name         *string          `json:"name"`
	Icon         *string          `json:"icon"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	TargetDate   *string          `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
}

// ReserveResponse mirrors domain.Reserve.
type ReserveResponse struct {
	ReserveID     string           `json:"reserveID"`
	AccountID     string           `json:"accountID"`
	Name          string           `json:"name"`
	Icon          string           `json:"icon"`
	TargetAmount  *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetDate    *string          `json:"targetDate,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToReserveResponse converts a domain.Reserve to its response DTO.
func ToReserveResponse(r *domain.Reserve) ReserveResponse {
	resp := ReserveResponse{
		ReserveID:     r.ReserveID,
		AccountID:     r.AccountID,
		Name:          r.Name,
		Icon:          r.Icon,
		TargetAmount:  r.TargetAmount,
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
	if r.TargetDate != nil {
		d := FormatDate(*r.TargetDate)
		resp.TargetDate = &d
	}
	return resp
}

// ToListReserveResponse converts a slice of reserves.
func ToListReserveResponse(reserves []domain.Reserve) []ReserveResponse {
	res := make([]ReserveResponse, len(reserves))
	for i, r := range reserves {
		res[i] = ToReserveResponse(&r)
	}
	return res
}
