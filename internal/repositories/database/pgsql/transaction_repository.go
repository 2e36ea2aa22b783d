package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	"github.com/jmallet/cashplan/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:                d.TransactionID,
		UserID:                       d.UserID,
		AccountID:                    d.AccountID,
		ReserveID:                    d.ReserveID,
		CategoryID:                   d.CategoryID,
		Amount:                       d.Amount,
		Type:                         string(d.Type),
		Date:                         d.Date,
		EffectiveDate:                d.EffectiveDate,
		Description:                  d.Description,
		TransferID:                   d.TransferID,
		RecurringExpenseID:           d.RecurringExpenseID,
		RecurringTransferID:          d.RecurringTransferID,
		ReimbursementID:              d.ReimbursementID,
		DeferredDebitSourceAccountID: d.DeferredDebitSourceAccountID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:                m.TransactionID,
		UserID:                       m.UserID,
		AccountID:                    m.AccountID,
		ReserveID:                    m.ReserveID,
		CategoryID:                   m.CategoryID,
		Amount:                       m.Amount,
		Type:                         domain.TransactionType(m.Type),
		Status:                       domain.Real,
		Date:                         m.Date,
		EffectiveDate:                m.EffectiveDate,
		Description:                  m.Description,
		TransferID:                   m.TransferID,
		RecurringExpenseID:           m.RecurringExpenseID,
		RecurringTransferID:          m.RecurringTransferID,
		ReimbursementID:              m.ReimbursementID,
		DeferredDebitSourceAccountID: m.DeferredDebitSourceAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, user_id, account_id, reserve_id, category_id, amount, type, date, effective_date, description, transfer_id, recurring_expense_id, recurring_transfer_id, reimbursement_id, deferred_debit_source_account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var reserveID, categoryID, transferID, rexpID, rtrfID, reimbID, ddebitID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&reserveID,
		&categoryID,
		&m.Amount,
		&m.Type,
		&m.Date,
		&m.EffectiveDate,
		&m.Description,
		&transferID,
		&rexpID,
		&rtrfID,
		&reimbID,
		&ddebitID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	m.ReserveID = fromNullStr(reserveID)
	m.CategoryID = fromNullStr(categoryID)
	m.TransferID = fromNullStr(transferID)
	m.RecurringExpenseID = fromNullStr(rexpID)
	m.RecurringTransferID = fromNullStr(rtrfID)
	m.ReimbursementID = fromNullStr(reimbID)
	m.DeferredDebitSourceAccountID = fromNullStr(ddebitID)
	return m, nil
}

func insertTransactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.UserID,
		m.AccountID,
		nullStr(m.ReserveID),
		nullStr(m.CategoryID),
		m.Amount,
		m.Type,
		m.Date,
		m.EffectiveDate,
		m.Description,
		nullStr(m.TransferID),
		nullStr(m.RecurringExpenseID),
		nullStr(m.RecurringTransferID),
		nullStr(m.ReimbursementID),
		nullStr(m.DeferredDebitSourceAccountID),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

// SaveTransaction persists a new real transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, mapWriteError(err))
	}
	return nil
}

// SaveTransactions persists several transactions atomically. Used for
// transfer legs, which must land together.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, txn := range txns {
		m := toModelTransaction(txn)
		if _, err := tx.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, mapWriteError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a specific transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a filtered, date-descending list of a user's
// transactions.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	appendCond := func(cond string, val any) {
		args = append(args, val)
		sb.WriteString(" AND " + cond + " $" + strconv.Itoa(len(args)))
	}

	if filter.AccountID != "" {
		appendCond("account_id =", filter.AccountID)
	}
	if filter.ReserveID != "" {
		appendCond("reserve_id =", filter.ReserveID)
	}
	if filter.CategoryID != "" {
		appendCond("category_id =", filter.CategoryID)
	}
	if filter.From != nil {
		appendCond("date >=", *filter.From)
	}
	if filter.To != nil {
		appendCond("date <=", *filter.To)
	}

	sb.WriteString(" ORDER BY date DESC, created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(";")

	return r.queryTransactions(ctx, sb.String(), args...)
}

// ListAllTransactions retrieves every transaction of a user, date-descending.
func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query, userID)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateTransaction updates an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET account_id = $2, reserve_id = $3, category_id = $4, amount = $5, type = $6, date = $7, effective_date = $8, description = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		nullStr(m.ReserveID),
		nullStr(m.CategoryID),
		m.Amount,
		m.Type,
		m.Date,
		m.EffectiveDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction permanently.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionsByTransferID removes both legs of a transfer.
func (r *PgxTransactionRepository) DeleteTransactionsByTransferID(ctx context.Context, transferID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
