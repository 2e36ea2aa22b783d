package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	"github.com/jmallet/cashplan/internal/models"
)

type PgxReserveRepository struct {
	BaseRepository
}

// newPgxReserveRepository creates a new repository for reserve data.
func newPgxReserveRepository(pool *pgxpool.Pool) portsrepo.ReserveRepository {
	return &PgxReserveRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReserveRepository = (*PgxReserveRepository)(nil)

func toDomainReserve(m models.Reserve) domain.Reserve {
	return domain.Reserve{
		ReserveID:    m.ReserveID,
		UserID:       m.UserID,
		AccountID:    m.AccountID,
		Name:         m.Name,
		Icon:         m.Icon,
		TargetAmount: m.TargetAmount,
		TargetDate:   m.TargetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const reserveColumns = `reserve_id, user_id, account_id, name, icon, target_amount, target_date, created_at, created_by, last_updated_at, last_updated_by`

func scanReserve(row pgx.Row) (models.Reserve, error) {
	var m models.Reserve
	err := row.Scan(
		&m.ReserveID,
		&m.UserID,
		&m.AccountID,
		&m.Name,
		&m.Icon,
		&m.TargetAmount,
		&m.TargetDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReserveRepository) SaveReserve(ctx context.Context, reserve domain.Reserve) error {
	query := `
		INSERT INTO reserves (` + reserveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		reserve.ReserveID,
		reserve.UserID,
		reserve.AccountID,
		reserve.Name,
		reserve.Icon,
		reserve.TargetAmount,
		reserve.TargetDate,
		reserve.CreatedAt,
		reserve.CreatedBy,
		reserve.LastUpdatedAt,
		reserve.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reserve %s: %w", reserve.ReserveID, mapWriteError(err))
	}
	return nil
}

func (r *PgxReserveRepository) FindReserveByID(ctx context.Context, reserveID string) (*domain.Reserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM reserves WHERE reserve_id = $1;`

	m, err := scanReserve(r.Pool.QueryRow(ctx, query, reserveID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reserve by ID %s: %w", reserveID, err)
	}

	reserve := toDomainReserve(m)
	return &reserve, nil
}

func (r *PgxReserveRepository) ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM reserves WHERE user_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserves for user %s: %w", userID, err)
	}
	defer rows.Close()

	var reserves []domain.Reserve
	for rows.Next() {
		m, err := scanReserve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reserve row: %w", err)
		}
		reserves = append(reserves, toDomainReserve(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reserve rows: %w", err)
	}
	return reserves, nil
}

func (r *PgxReserveRepository) UpdateReserve(ctx context.Context, reserve domain.Reserve) error {
	query := `
		UPDATE reserves
		SET name = $2, icon = $3, target_amount = $4, target_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE reserve_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		reserve.ReserveID,
		reserve.Name,
		reserve.Icon,
		reserve.TargetAmount,
		reserve.TargetDate,
		reserve.LastUpdatedAt,
		reserve.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reserve %s: %w", reserve.ReserveID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReserveRepository) DeleteReserve(ctx context.Context, reserveID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reserves WHERE reserve_id = $1;`, reserveID)
	if err != nil {
		return fmt.Errorf("failed to delete reserve %s: %w", reserveID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
