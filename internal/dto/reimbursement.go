package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReimbursementRequest defines the data needed to expect a reimbursement
// against an already-recorded expense.
type CreateReimbursementRequest struct {
	SourceTransactionID string          `json:"sourceTransactionID" binding:"required"`
	ExpectedAmount      decimal.Decimal `json:"expectedAmount" binding:"required"`
	ExpectedDate        string          `json:"expectedDate" binding:"required,datetime=2006-01-02"`
}

// UpdateReimbursementRequest defines the data allowed for updating a pending
// reimbursement.
type UpdateReimbursementRequest struct {
	ExpectedAmount *decimal.Decimal `json:"expectedAmount"`
	ExpectedDate   *string          `json:"expectedDate" binding:"omitempty,datetime=2006-01-02"`
}

// ReceiveReimbursementRequest marks a reimbursement as received. Amount and
// date default to the expected values when omitted.
type ReceiveReimbursementRequest struct {
	ReceivedAmount *decimal.Decimal `json:"receivedAmount"`
	ReceivedDate   string           `json:"receivedDate" binding:"omitempty,datetime=2006-01-02"`
}

// ReimbursementResponse mirrors domain.Reimbursement.
type ReimbursementResponse struct {
	ReimbursementID       string                     `json:"reimbursementID"`
	SourceTransactionID   string                     `json:"sourceTransactionID"`
	Status                domain.ReimbursementStatus `json:"status"`
	ExpectedAmount        decimal.Decimal            `json:"expectedAmount"`
	ExpectedDate          string                     `json:"expectedDate"`
	ReceivedAmount        *decimal.Decimal           `json:"receivedAmount,omitempty"`
	ReceivedDate          string                     `json:"receivedDate,omitempty"`
	ReceivedTransactionID string                     `json:"receivedTransactionID,omitempty"`
}

// ToReimbursementResponse converts a domain.Reimbursement to its response DTO.
func ToReimbursementResponse(r *domain.Reimbursement) ReimbursementResponse {
	return ReimbursementResponse{
		ReimbursementID:       r.ReimbursementID,
		SourceTransactionID:   r.SourceTransactionID,
		Status:                r.Status,
		ExpectedAmount:        r.ExpectedAmount,
		ExpectedDate:          FormatDate(r.ExpectedDate),
		ReceivedAmount:        r.ReceivedAmount,
		ReceivedDate:          FormatDatePtr(r.ReceivedDate),
		ReceivedTransactionID: r.ReceivedTransactionID,
	}
}

// ToListReimbursementResponse converts a slice of reimbursements.
func ToListReimbursementResponse(reimbs []domain.Reimbursement) []ReimbursementResponse {
	res := make([]ReimbursementResponse, len(reimbs))
	for i, r := range reimbs {
		res[i] = ToReimbursementResponse(&r)
	}
	return res
}
