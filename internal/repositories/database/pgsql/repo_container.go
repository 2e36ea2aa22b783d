package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		ReserveRepo:       newPgxReserveRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		RecurringRepo:     newPgxRecurringRepository(dbPool),
		ReimbursementRepo: newPgxReimbursementRepository(dbPool),
		LoanRepo:          newPgxLoanRepository(dbPool),
		BudgetRepo:        newPgxBudgetRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
	}
}
