// Package services declares the service interfaces the handlers depend on.
package services

import (
	"context"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/shopspring/decimal"
)

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Account       AccountSvc
	Reserve       ReserveSvc
	Category      CategorySvc
	Transaction   TransactionSvc
	Recurring     RecurringSvc
	Reimbursement ReimbursementSvc
	Loan          LoanSvc
	Budget        BudgetSvc
	Forecast      ForecastSvc
	User          UserSvc
}

// AccountSvc manages accounts and answers current-balance queries.
type AccountSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	ArchiveAccount(ctx context.Context, userID string, accountID string) error

	// CurrentBalance is the REAL-only balance of the account as of the cutoff.
	CurrentBalance(ctx context.Context, userID string, accountID string, cutoff time.Time) (decimal.Decimal, error)
}

// ReserveSvc manages virtual sub-balances.
type ReserveSvc interface {
	CreateReserve(ctx context.Context, userID string, req dto.CreateReserveRequest) (*domain.Reserve, error)
	GetReserveByID(ctx context.Context, userID string, reserveID string) (*domain.Reserve, error)
	ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error)
	UpdateReserve(ctx context.Context, userID string, reserveID string, req dto.UpdateReserveRequest) (*domain.Reserve, error)
	DeleteReserve(ctx context.Context, userID string, reserveID string) error
}

// CategorySvc manages the category tree.
type CategorySvc interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// TransactionSvc manages real ledger entries. Potential transactions are
// never persisted; ValidateOccurrence turns one generated occurrence into a
// real transaction carrying the rule provenance the dedup layer keys on.
type TransactionSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	ValidateOccurrence(ctx context.Context, userID string, req dto.ValidateOccurrenceRequest) ([]domain.Transaction, error)
}

// RecurringSvc manages both kinds of recurring rules.
type RecurringSvc interface {
	CreateRecurringExpense(ctx context.Context, userID string, req dto.CreateRecurringExpenseRequest) (*domain.RecurringExpense, error)
	ListRecurringExpenses(ctx context.Context, userID string) ([]domain.RecurringExpense, error)
	UpdateRecurringExpense(ctx context.Context, userID string, ruleID string, req dto.UpdateRecurringExpenseRequest) (*domain.RecurringExpense, error)
	DeleteRecurringExpense(ctx context.Context, userID string, ruleID string) error

	CreateRecurringTransfer(ctx context.Context, userID string, req dto.CreateRecurringTransferRequest) (*domain.RecurringTransfer, error)
	ListRecurringTransfers(ctx context.Context, userID string) ([]domain.RecurringTransfer, error)
	UpdateRecurringTransfer(ctx context.Context, userID string, ruleID string, req dto.UpdateRecurringTransferRequest) (*domain.RecurringTransfer, error)
	DeleteRecurringTransfer(ctx context.Context, userID string, ruleID string) error
}

// ReimbursementSvc manages expected reimbursements and their settlement.
type ReimbursementSvc interface {
	CreateReimbursement(ctx context.Context, userID string, req dto.CreateReimbursementRequest) (*domain.Reimbursement, error)
	ListReimbursements(ctx context.Context, userID string) ([]domain.Reimbursement, error)
	UpdateReimbursement(ctx context.Context, userID string, reimbursementID string, req dto.UpdateReimbursementRequest) (*domain.Reimbursement, error)
	DeleteReimbursement(ctx context.Context, userID string, reimbursementID string) error

	// ReceiveReimbursement settles a pending reimbursement: it records the
	// real income transaction and flips the status to RECEIVED.
	ReceiveReimbursement(ctx context.Context, userID string, reimbursementID string, req dto.ReceiveReimbursementRequest) (*domain.Reimbursement, error)
}

// LoanSvc manages loans and their paired installment rules.
type LoanSvc interface {
	CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error)
	GetLoanByID(ctx context.Context, userID string, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, userID string) ([]domain.Loan, error)
	DeleteLoan(ctx context.Context, userID string, loanID string) error

	// LoanStatus derives the current amortization position of a loan.
	LoanStatus(ctx context.Context, userID string, loanID string, asOf time.Time) (*dto.LoanStatusResponse, error)
}

// BudgetSvc manages monthly category budgets.
type BudgetSvc interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error

	// BudgetReport compares budgets against real spending for one month.
	BudgetReport(ctx context.Context, userID string, month time.Time) ([]domain.BudgetReportRow, error)
}

// ForecastSvc runs the projection engine over the user's whole document.
type ForecastSvc interface {
	// BuildForecast returns the 12 monthly snapshots from the current month.
	BuildForecast(ctx context.Context, userID string, today time.Time) (*domain.Forecast, error)

	// MergedTransactions returns real and generated transactions combined,
	// deduplicated and sorted date-descending for display.
	MergedTransactions(ctx context.Context, userID string, today time.Time) ([]domain.Transaction, error)
}

// UserSvc manages users and credential checks.
type UserSvc interface {
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}
