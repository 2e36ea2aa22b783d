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

type PgxReimbursementRepository struct {
	BaseRepository
}

// newPgxReimbursementRepository creates a new repository for reimbursements.
func newPgxReimbursementRepository(pool *pgxpool.Pool) portsrepo.ReimbursementRepository {
	return &PgxReimbursementRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReimbursementRepository = (*PgxReimbursementRepository)(nil)

func toDomainReimbursement(m models.Reimbursement) domain.Reimbursement {
	return domain.Reimbursement{
		ReimbursementID:       m.ReimbursementID,
		UserID:                m.UserID,
		SourceTransactionID:   m.SourceTransactionID,
		Status:                domain.ReimbursementStatus(m.Status),
		ExpectedAmount:        m.ExpectedAmount,
		ExpectedDate:          m.ExpectedDate,
		ReceivedAmount:        m.ReceivedAmount,
		ReceivedDate:          m.ReceivedDate,
		ReceivedTransactionID: m.ReceivedTransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const reimbursementColumns = `reimbursement_id, user_id, source_transaction_id, status, expected_amount, expected_date, received_amount, received_date, received_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanReimbursement(row pgx.Row) (models.Reimbursement, error) {
	var m models.Reimbursement
	var receivedTxnID sql.NullString
	err := row.Scan(
		&m.ReimbursementID,
		&m.UserID,
		&m.SourceTransactionID,
		&m.Status,
		&m.ExpectedAmount,
		&m.ExpectedDate,
		&m.ReceivedAmount,
		&m.ReceivedDate,
		&receivedTxnID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Reimbursement{}, err
	}
	m.ReceivedTransactionID = fromNullStr(receivedTxnID)
	return m, nil
}

func (r *PgxReimbursementRepository) SaveReimbursement(ctx context.Context, reimb domain.Reimbursement) error {
	query := `
		INSERT INTO reimbursements (` + reimbursementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		reimb.ReimbursementID,
		reimb.UserID,
		reimb.SourceTransactionID,
		string(reimb.Status),
		reimb.ExpectedAmount,
		reimb.ExpectedDate,
		reimb.ReceivedAmount,
		reimb.ReceivedDate,
		nullStr(reimb.ReceivedTransactionID),
		reimb.CreatedAt,
		reimb.CreatedBy,
		reimb.LastUpdatedAt,
		reimb.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reimbursement %s: %w", reimb.ReimbursementID, mapWriteError(err))
	}
	return nil
}

func (r *PgxReimbursementRepository) FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE reimbursement_id = $1;`

	m, err := scanReimbursement(r.Pool.QueryRow(ctx, query, reimbursementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reimbursement by ID %s: %w", reimbursementID, err)
	}

	reimb := toDomainReimbursement(m)
	return &reimb, nil
}

func (r *PgxReimbursementRepository) ListReimbursements(ctx context.Context, userID string) ([]domain.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE user_id = $1 ORDER BY expected_date;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reimbursements for user %s: %w", userID, err)
	}
	defer rows.Close()

	var reimbs []domain.Reimbursement
	for rows.Next() {
		m, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement row: %w", err)
		}
		reimbs = append(reimbs, toDomainReimbursement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reimbursement rows: %w", err)
	}
	return reimbs, nil
}

func (r *PgxReimbursementRepository) UpdateReimbursement(ctx context.Context, reimb domain.Reimbursement) error {
	query := `
		UPDATE reimbursements
		SET status = $2, expected_amount = $3, expected_date = $4, received_amount = $5, received_date = $6, received_transaction_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE reimbursement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		reimb.ReimbursementID,
		string(reimb.Status),
		reimb.ExpectedAmount,
		reimb.ExpectedDate,
		reimb.ReceivedAmount,
		reimb.ReceivedDate,
		nullStr(reimb.ReceivedTransactionID),
		reimb.LastUpdatedAt,
		reimb.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement %s: %w", reimb.ReimbursementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReimbursementRepository) DeleteReimbursement(ctx context.Context, reimbursementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reimbursements WHERE reimbursement_id = $1;`, reimbursementID)
	if err != nil {
		return fmt.Errorf("failed to delete reimbursement %s: %w", reimbursementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
