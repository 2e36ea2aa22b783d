package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to register a loan. Progress can
// be described either by the number of payments already made or by the
// remaining balance; when RemainingBalance is given the payment count is
// derived from the amortization schedule.
type CreateLoanRequest struct {
	Name              string           `json:"name" binding:"required"`
	Principal         decimal.Decimal  `json:"principal" binding:"required"`
	AnnualRatePercent decimal.Decimal  `json:"annualRatePercent"`
	TermMonths        int              `json:"termMonths" binding:"required,min=1"`
	StartDate         string           `json:"startDate" binding:"required,datetime=2006-01-02"`
	AccountID         string           `json:"accountID" binding:"required"`
	CategoryID        string           `json:"categoryID"`
	PaymentsMade      *int             `json:"paymentsMade" binding:"omitempty,min=0"`
	RemainingBalance  *decimal.Decimal `json:"remainingBalance"`
}

// LoanResponse mirrors domain.Loan.
type LoanResponse struct {
	LoanID             string          `json:"loanID"`
	Name               string          `json:"name"`
	Principal          decimal.Decimal `json:"principal"`
	AnnualRatePercent  decimal.Decimal `json:"annualRatePercent"`
	TermMonths         int             `json:"termMonths"`
	StartDate          string          `json:"startDate"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	PaymentsMade       int             `json:"paymentsMade"`
	AccountID          string          `json:"accountID"`
	CategoryID         string          `json:"categoryID,omitempty"`
	RecurringExpenseID string          `json:"recurringExpenseID,omitempty"`
}

// LoanStatusResponse reports the amortization state of a loan as of a date.
type LoanStatusResponse struct {
	LoanID            string          `json:"loanID"`
	AsOf              string          `json:"asOf"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	PaymentsMade      int             `json:"paymentsMade"`
	PaymentsRemaining int             `json:"paymentsRemaining"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	PayoffDate        string          `json:"payoffDate"`
}

// ToLoanResponse converts a domain.Loan to its response DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:             l.LoanID,
		Name:               l.Name,
		Principal:          l.Principal,
		AnnualRatePercent:  l.AnnualRatePercent,
		TermMonths:         l.TermMonths,
		StartDate:          FormatDate(l.StartDate),
		MonthlyPayment:     l.MonthlyPayment,
		PaymentsMade:       l.PaymentsMade,
		AccountID:          l.AccountID,
		CategoryID:         l.CategoryID,
		RecurringExpenseID: l.RecurringExpenseID,
	}
}

// ToListLoanResponse converts a slice of loans.
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = ToLoanResponse(&l)
	}
	return res
}
