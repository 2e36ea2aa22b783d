// Package repositories declares the persistence interfaces the services
// depend on. Implementations live under internal/repositories/database.
package repositories

import (
	"context"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReserveRepository persists reserves (virtual sub-balances of accounts).
type ReserveRepository interface {
	FindReserveByID(ctx context.Context, reserveID string) (*domain.Reserve, error)
	ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error)
	SaveReserve(ctx context.Context, reserve domain.Reserve) error
	UpdateReserve(ctx context.Context, reserve domain.Reserve) error
	DeleteReserve(ctx context.Context, reserveID string) error
}

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// RecurringRepository persists both kinds of recurring rules.
type RecurringRepository interface {
	FindRecurringExpenseByID(ctx context.Context, ruleID string) (*domain.RecurringExpense, error)
	ListRecurringExpenses(ctx context.Context, userID string) ([]domain.RecurringExpense, error)
	SaveRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error
	UpdateRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error
	DeleteRecurringExpense(ctx context.Context, ruleID string) error

	FindRecurringTransferByID(ctx context.Context, ruleID string) (*domain.RecurringTransfer, error)
	ListRecurringTransfers(ctx context.Context, userID string) ([]domain.RecurringTransfer, error)
	SaveRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error
	UpdateRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error
	DeleteRecurringTransfer(ctx context.Context, ruleID string) error
}

// ReimbursementRepository persists expected reimbursements.
type ReimbursementRepository interface {
	FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error)
	ListReimbursements(ctx context.Context, userID string) ([]domain.Reimbursement, error)
	SaveReimbursement(ctx context.Context, reimb domain.Reimbursement) error
	UpdateReimbursement(ctx context.Context, reimb domain.Reimbursement) error
	DeleteReimbursement(ctx context.Context, reimbursementID string) error
}

// LoanRepository persists loans.
type LoanRepository interface {
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, userID string) ([]domain.Loan, error)
	SaveLoan(ctx context.Context, loan domain.Loan) error
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	DeleteLoan(ctx context.Context, loanID string) error
}

// BudgetRepository persists monthly category budgets.
type BudgetRepository interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error

	// SumRealExpensesByCategory aggregates REAL expenses per category for the
	// given date window. Used by the budget report.
	SumRealExpensesByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

// UserRepository persists users.
type UserRepository interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
}

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	AccountRepo       AccountRepository
	ReserveRepo       ReserveRepository
	CategoryRepo      CategoryRepository
	TransactionRepo   TransactionRepository
	RecurringRepo     RecurringRepository
	ReimbursementRepo ReimbursementRepository
	LoanRepo          LoanRepository
	BudgetRepo        BudgetRepository
	UserRepo          UserRepository
}
