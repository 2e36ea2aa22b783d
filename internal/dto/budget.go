package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to set a monthly budget for a
// category.
type CreateBudgetRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// BudgetResponse mirrors domain.Budget.
type BudgetResponse struct {
	BudgetID   string          `json:"budgetID"`
	CategoryID string          `json:"categoryID"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
	}
}

// ToListBudgetResponse converts a slice of budgets.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}

// BudgetReportParams selects the month reported on, defaulting to the current
// month when omitted.
type BudgetReportParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// BudgetReportRowResponse is one category line of the monthly budget report.
type BudgetReportRowResponse struct {
	CategoryID string          `json:"categoryID"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// BudgetReportResponse is the monthly spending-vs-budget report.
type BudgetReportResponse struct {
	Month string                    `json:"month"`
	Rows  []BudgetReportRowResponse `json:"rows"`
}

// ToBudgetReportResponse converts report rows for a month.
func ToBudgetReportResponse(month string, rows []domain.BudgetReportRow) BudgetReportResponse {
	out := BudgetReportResponse{Month: month, Rows: make([]BudgetReportRowResponse, len(rows))}
	for i, r := range rows {
		out.Rows[i] = BudgetReportRowResponse{
			CategoryID: r.CategoryID,
			Budgeted:   r.Budgeted,
			Spent:      r.Spent,
			Remaining:  r.Remaining,
		}
	}
	return out
}
