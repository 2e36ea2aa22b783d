package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents an amortizing loan row.
type Loan struct {
	LoanID             string          `db:"loan_id"`
	UserID             string          `db:"user_id"`
	Name               string          `db:"name"`
	Principal          decimal.Decimal `db:"principal"`
	AnnualRatePercent  decimal.Decimal `db:"annual_rate_percent"`
	TermMonths         int             `db:"term_months"`
	StartDate          time.Time       `db:"start_date"`
	MonthlyPayment     decimal.Decimal `db:"monthly_payment"`
	PaymentsMade       int             `db:"payments_made"`
	AccountID          string          `db:"account_id"`
	CategoryID         string          `db:"category_id"`          // Nullable
	RecurringExpenseID string          `db:"recurring_expense_id"` // Nullable once fully paid
	AuditFields
}
