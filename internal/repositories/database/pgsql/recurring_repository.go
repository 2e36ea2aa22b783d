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

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates a new repository for recurring rules.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepository {
	return &PgxRecurringRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RecurringRepository = (*PgxRecurringRepository)(nil)

func toDomainRecurringExpense(m models.RecurringExpense) domain.RecurringExpense {
	return domain.RecurringExpense{
		RecurringExpenseID: m.RecurringExpenseID,
		UserID:             m.UserID,
		Name:               m.Name,
		Amount:             m.Amount,
		Frequency:          domain.RecurringFrequency(m.Frequency),
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainRecurringTransfer(m models.RecurringTransfer) domain.RecurringTransfer {
	return domain.RecurringTransfer{
		RecurringTransferID: m.RecurringTransferID,
		UserID:              m.UserID,
		Name:                m.Name,
		Amount:              m.Amount,
		Frequency:           domain.RecurringFrequency(m.Frequency),
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Source:              domain.TransferEndpoint{Kind: domain.TransferEndpointKind(m.SourceKind), ID: m.SourceID},
		Destination:         domain.TransferEndpoint{Kind: domain.TransferEndpointKind(m.DestinationKind), ID: m.DestinationID},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const recurringExpenseColumns = `recurring_expense_id, user_id, name, amount, frequency, start_date, end_date, account_id, category_id, created_at, created_by, last_updated_at, last_updated_by`

func scanRecurringExpense(row pgx.Row) (models.RecurringExpense, error) {
	var m models.RecurringExpense
	var categoryID sql.NullString
	err := row.Scan(
		&m.RecurringExpenseID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.Frequency,
		&m.StartDate,
		&m.EndDate,
		&m.AccountID,
		&categoryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.RecurringExpense{}, err
	}
	m.CategoryID = fromNullStr(categoryID)
	return m, nil
}

func (r *PgxRecurringRepository) SaveRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error {
	query := `
		INSERT INTO recurring_expenses (` + recurringExpenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		rule.RecurringExpenseID,
		rule.UserID,
		rule.Name,
		rule.Amount,
		string(rule.Frequency),
		rule.StartDate,
		rule.EndDate,
		rule.AccountID,
		nullStr(rule.CategoryID),
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring expense %s: %w", rule.RecurringExpenseID, mapWriteError(err))
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringExpenseByID(ctx context.Context, ruleID string) (*domain.RecurringExpense, error) {
	query := `SELECT ` + recurringExpenseColumns + ` FROM recurring_expenses WHERE recurring_expense_id = $1;`

	m, err := scanRecurringExpense(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring expense by ID %s: %w", ruleID, err)
	}

	rule := toDomainRecurringExpense(m)
	return &rule, nil
}

func (r *PgxRecurringRepository) ListRecurringExpenses(ctx context.Context, userID string) ([]domain.RecurringExpense, error) {
	query := `SELECT ` + recurringExpenseColumns + ` FROM recurring_expenses WHERE user_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	var rules []domain.RecurringExpense
	for rows.Next() {
		m, err := scanRecurringExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring expense row: %w", err)
		}
		rules = append(rules, toDomainRecurringExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring expense rows: %w", err)
	}
	return rules, nil
}

func (r *PgxRecurringRepository) UpdateRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error {
	query := `
		UPDATE recurring_expenses
		SET name = $2, amount = $3, frequency = $4, start_date = $5, end_date = $6, account_id = $7, category_id = $8, last_updated_at = $9, last_updated_by = $10
		WHERE recurring_expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rule.RecurringExpenseID,
		rule.Name,
		rule.Amount,
		string(rule.Frequency),
		rule.StartDate,
		rule.EndDate,
		rule.AccountID,
		nullStr(rule.CategoryID),
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring expense %s: %w", rule.RecurringExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRepository) DeleteRecurringExpense(ctx context.Context, ruleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_expenses WHERE recurring_expense_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring expense %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const recurringTransferColumns = `recurring_transfer_id, user_id, name, amount, frequency, start_date, end_date, source_kind, source_id, destination_kind, destination_id, created_at, created_by, last_updated_at, last_updated_by`

func scanRecurringTransfer(row pgx.Row) (models.RecurringTransfer, error) {
	var m models.RecurringTransfer
	err := row.Scan(
		&m.RecurringTransferID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.Frequency,
		&m.StartDate,
		&m.EndDate,
		&m.SourceKind,
		&m.SourceID,
		&m.DestinationKind,
		&m.DestinationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRecurringRepository) SaveRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error {
	query := `
		INSERT INTO recurring_transfers (` + recurringTransferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		rule.RecurringTransferID,
		rule.UserID,
		rule.Name,
		rule.Amount,
		string(rule.Frequency),
		rule.StartDate,
		rule.EndDate,
		string(rule.Source.Kind),
		rule.Source.ID,
		string(rule.Destination.Kind),
		rule.Destination.ID,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring transfer %s: %w", rule.RecurringTransferID, mapWriteError(err))
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringTransferByID(ctx context.Context, ruleID string) (*domain.RecurringTransfer, error) {
	query := `SELECT ` + recurringTransferColumns + ` FROM recurring_transfers WHERE recurring_transfer_id = $1;`

	m, err := scanRecurringTransfer(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring transfer by ID %s: %w", ruleID, err)
	}

	rule := toDomainRecurringTransfer(m)
	return &rule, nil
}

func (r *PgxRecurringRepository) ListRecurringTransfers(ctx context.Context, userID string) ([]domain.RecurringTransfer, error) {
	query := `SELECT ` + recurringTransferColumns + ` FROM recurring_transfers WHERE user_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transfers for user %s: %w", userID, err)
	}
	defer rows.Close()

	var rules []domain.RecurringTransfer
	for rows.Next() {
		m, err := scanRecurringTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring transfer row: %w", err)
		}
		rules = append(rules, toDomainRecurringTransfer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transfer rows: %w", err)
	}
	return rules, nil
}

func (r *PgxRecurringRepository) UpdateRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error {
	query := `
		UPDATE recurring_transfers
		SET name = $2, amount = $3, frequency = $4, start_date = $5, end_date = $6, source_kind = $7, source_id = $8, destination_kind = $9, destination_id = $10, last_updated_at = $11, last_updated_by = $12
		WHERE recurring_transfer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rule.RecurringTransferID,
		rule.Name,
		rule.Amount,
		string(rule.Frequency),
		rule.StartDate,
		rule.EndDate,
		string(rule.Source.Kind),
		rule.Source.ID,
		string(rule.Destination.Kind),
		rule.Destination.ID,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring transfer %s: %w", rule.RecurringTransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRepository) DeleteRecurringTransfer(ctx context.Context, ruleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_transfers WHERE recurring_transfer_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transfer %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
