package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringExpenseRequest defines the data needed to create a recurring
// expense rule.
type CreateRecurringExpenseRequest struct {
	Name       string                    `json:"name" binding:"required"`
	Amount     decimal.Decimal           `json:"amount" binding:"required"`
	Frequency  domain.RecurringFrequency `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY ANNUAL"`
	StartDate  string                    `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string                    `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	AccountID  string                    `json:"accountID" binding:"required"`
	CategoryID string                    `json:"categoryID"`
}

// UpdateRecurringExpenseRequest defines the data allowed for updating a
// recurring expense rule.
type UpdateRecurringExpenseRequest struct {
	Name       *string                    `json:"name"`
	Amount     *decimal.Decimal           `json:"amount"`
	Frequency  *domain.RecurringFrequency `json:"frequency" binding:"omitempty,oneof=WEEKLY MONTHLY ANNUAL"`
	StartDate  *string                    `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string                    `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	AccountID  *string                    `json:"accountID"`
	CategoryID *string                    `json:"categoryID"`
}

// RecurringExpenseResponse mirrors domain.RecurringExpense.
type RecurringExpenseResponse struct {
	RecurringExpenseID string                    `json:"recurringExpenseID"`
	Name               string                    `json:"name"`
	Amount             decimal.Decimal           `json:"amount"`
	Frequency          domain.RecurringFrequency `json:"frequency"`
	StartDate          string                    `json:"startDate"`
	EndDate            string                    `json:"endDate,omitempty"`
	AccountID          string                    `json:"accountID"`
	CategoryID         string                    `json:"categoryID,omitempty"`
}

// ToRecurringExpenseResponse converts a domain rule to its response DTO.
func ToRecurringExpenseResponse(r *domain.RecurringExpense) RecurringExpenseResponse {
	return RecurringExpenseResponse{
		RecurringExpenseID: r.RecurringExpenseID,
		Name:               r.Name,
		Amount:             r.Amount,
		Frequency:          r.Frequency,
		StartDate:          FormatDate(r.StartDate),
		EndDate:            FormatDatePtr(r.EndDate),
		AccountID:          r.AccountID,
		CategoryID:         r.CategoryID,
	}
}

// ToListRecurringExpenseResponse converts a slice of rules.
func ToListRecurringExpenseResponse(rules []domain.RecurringExpense) []RecurringExpenseResponse {
	res := make([]RecurringExpenseResponse, len(rules))
	for i, r := range rules {
		res[i] = ToRecurringExpenseResponse(&r)
	}
	return res
}

// CreateRecurringTransferRequest defines the data needed to create a recurring
// transfer rule. Endpoints are transfer refs: "acc_<uuid>" or "res_<uuid>".
type CreateRecurringTransferRequest struct {
	Name           string                    `json:"name" binding:"required"`
	Amount         decimal.Decimal           `json:"amount" binding:"required"`
	Frequency      domain.RecurringFrequency `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY ANNUAL"`
	StartDate      string                    `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate        string                    `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	SourceRef      string                    `json:"sourceRef" binding:"required,transferref"`
	DestinationRef string                    `json:"destinationRef" binding:"required,transferref"`
}

// UpdateRecurringTransferRequest defines the data allowed for updating a
// recurring transfer rule.
type UpdateRecurringTransferRequest struct {
	Name           *string                    `json:"name"`
	Amount         *decimal.Decimal           `json:"amount"`
	Frequency      *domain.RecurringFrequency `json:"frequency" binding:"omitempty,oneof=WEEKLY MONTHLY ANNUAL"`
	StartDate      *string                    `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate        *string                    `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	SourceRef      *string                    `json:"sourceRef" binding:"omitempty,transferref"`
	DestinationRef *string                    `json:"destinationRef" binding:"omitempty,transferref"`
}

// RecurringTransferResponse mirrors domain.RecurringTransfer, with endpoints
// serialized back to their ref form.
type RecurringTransferResponse struct {
	RecurringTransferID string                    `json:"recurringTransferID"`
	Name                string                    `json:"name"`
	Amount              decimal.Decimal           `json:"amount"`
	Frequency           domain.RecurringFrequency `json:"frequency"`
	StartDate           string                    `json:"startDate"`
	EndDate             string                    `json:"endDate,omitempty"`
	SourceRef           string                    `json:"sourceRef"`
	DestinationRef      string                    `json:"destinationRef"`
}

// ToRecurringTransferResponse converts a domain rule to its response DTO.
func ToRecurringTransferResponse(r *domain.RecurringTransfer) RecurringTransferResponse {
	return RecurringTransferResponse{
		RecurringTransferID: r.RecurringTransferID,
		Name:                r.Name,
		Amount:              r.Amount,
		Frequency:           r.Frequency,
		StartDate:           FormatDate(r.StartDate),
		EndDate:             FormatDatePtr(r.EndDate),
		SourceRef:           r.Source.Ref(),
		DestinationRef:      r.Destination.Ref(),
	}
}

// ToListRecurringTransferResponse converts a slice of rules.
func ToListRecurringTransferResponse(rules []domain.RecurringTransfer) []RecurringTransferResponse {
	res := make([]RecurringTransferResponse, len(rules))
	for i, r := range rules {
		res[i] = ToRecurringTransferResponse(&r)
	}
	return res
}
