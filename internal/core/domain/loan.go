package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an amortizing fixed-rate loan. It is always paired 1:1 with a
// RecurringExpense representing its monthly installment; deleting a loan
// deletes the paired rule.
type Loan struct {
	LoanID            string          `json:"loanID"` // Primary Key (UUID)
	UserID            string          `json:"userID"`
	Name              string          `json:"name"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"` // e.g. 3.5 means 3.5% APR
	TermMonths        int             `json:"termMonths"`
	StartDate         time.Time       `json:"startDate"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"` // Derived at creation
	PaymentsMade      int             `json:"paymentsMade"`   // Installments already paid at creation
	AccountID         string          `json:"accountID"`      // Account the installment debits
	CategoryID        string          `json:"categoryID,omitempty"`

	// The paired installment rule.
	RecurringExpenseID string `json:"recurringExpenseID"`

	AuditFields
}
