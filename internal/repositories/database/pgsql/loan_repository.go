package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	"github.com/jmallet/cashplan/internal/models"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepository {
	return &PgxLoanRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

func toDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:             m.LoanID,
		UserID:             m.UserID,
		Name:               m.Name,
		Principal:          m.Principal,
		AnnualRatePercent:  m.AnnualRatePercent,
		TermMonths:         m.TermMonths,
		StartDate:          m.StartDate,
		MonthlyPayment:     m.MonthlyPayment,
		PaymentsMade:       m.PaymentsMade,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		RecurringExpenseID: m.RecurringExpenseID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const loanColumns = `loan_id, user_id, name, principal, annual_rate_percent, term_months, start_date, monthly_payment, payments_made, account_id, category_id, recurring_expense_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	var categoryID, ruleID sql.NullString
	err := row.Scan(
		&m.LoanID,
		&m.UserID,
		&m.Name,
		&m.Principal,
		&m.AnnualRatePercent,
		&m.TermMonths,
		&m.StartDate,
		&m.MonthlyPayment,
		&m.PaymentsMade,
		&m.AccountID,
		&categoryID,
		&ruleID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Loan{}, err
	}
	m.CategoryID = fromNullStr(categoryID)
	m.RecurringExpenseID = fromNullStr(ruleID)
	return m, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		loan.LoanID,
		loan.UserID,
		loan.Name,
		loan.Principal,
		loan.AnnualRatePercent,
		loan.TermMonths,
		loan.StartDate,
		loan.MonthlyPayment,
		loan.PaymentsMade,
		loan.AccountID,
		nullStr(loan.CategoryID),
		nullStr(loan.RecurringExpenseID),
		loan.CreatedAt,
		loan.CreatedBy,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan %s: %w", loan.LoanID, mapWriteError(err))
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}

	loan := toDomainLoan(m)
	return &loan, nil
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, toDomainLoan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		UPDATE loans
		SET name = $2, payments_made = $3, category_id = $4, recurring_expense_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE loan_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		loan.LoanID,
		loan.Name,
		loan.PaymentsMade,
		nullStr(loan.CategoryID),
		nullStr(loan.RecurringExpenseID),
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
