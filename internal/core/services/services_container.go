package services

import (
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Reserve = NewReserveService(repos.ReserveRepo, repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.ReserveRepo, repos.RecurringRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.AccountRepo, repos.ReserveRepo)
	container.Reimbursement = NewReimbursementService(repos.ReimbursementRepo, repos.TransactionRepo)
	container.Loan = NewLoanService(repos.LoanRepo, repos.RecurringRepo, repos.AccountRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo)
	container.Forecast = NewForecastService(repos.AccountRepo, repos.ReserveRepo, repos.TransactionRepo, repos.RecurringRepo, repos.ReimbursementRepo)

	return container
}
