package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

type reserveService struct {
	BaseService
	reserveRepo portsrepo.ReserveRepository
	accountRepo portsrepo.AccountReader
}

// NewReserveService creates the reserve service.
func NewReserveService(reserveRepo portsrepo.ReserveRepository, accountRepo portsrepo.AccountReader) portssvc.ReserveSvc {
	return &reserveService{
		reserveRepo: reserveRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReserveSvc = (*reserveService)(nil)

func (s *reserveService) CreateReserve(ctx context.Context, userID string, req dto.CreateReserveRequest) (*domain.Reserve, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account for reserve", slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("invalid account: %w", err)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if account.AccountType == domain.DeferredDebit {
		return nil, fmt.Errorf("reserves cannot be attached to deferred debit accounts: %w", apperrors.ErrValidation)
	}

	targetDate, err := dto.ParseDatePtr(req.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid target date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	reserve := domain.Reserve{
		ReserveID:    uuid.NewString(),
		UserID:       userID,
		AccountID:    req.AccountID,
		Name:         req.Name,
		Icon:         req.Icon,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reserveRepo.SaveReserve(ctx, reserve); err != nil {
		s.LogError(ctx, err, "Failed to save reserve")
		return nil, fmt.Errorf("failed to save reserve: %w", err)
	}

	s.LogInfo(ctx, "Reserve created", slog.String("reserve_id", reserve.ReserveID))
	return &reserve, nil
}

func (s *reserveService) GetReserveByID(ctx context.Context, userID string, reserveID string) (*domain.Reserve, error) {
	return s.getOwnedReserve(ctx, userID, reserveID)
}

func (s *reserveService) ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error) {
	reserves, err := s.reserveRepo.ListReserves(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reserves")
		return nil, fmt.Errorf("failed to list reserves: %w", err)
	}
	return reserves, nil
}

func (s *reserveService) UpdateReserve(ctx context.Context, userID string, reserveID string, req dto.UpdateReserveRequest) (*domain.Reserve, error) {
	reserve, err := s.getOwnedReserve(ctx, userID, reserveID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		reserve.Name = *req.Name
	}
	if req.Icon != nil {
		reserve.Icon = *req.Icon
	}
	if req.TargetAmount != nil {
		reserve.TargetAmount = req.TargetAmount
	}
	if req.TargetDate != nil {
		targetDate, err := dto.ParseDatePtr(req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("invalid target date: %w", apperrors.ErrValidation)
		}
		reserve.TargetDate = targetDate
	}

	reserve.LastUpdatedAt = time.Now()
	reserve.LastUpdatedBy = userID

	if err := s.reserveRepo.UpdateReserve(ctx, *reserve); err != nil {
		s.LogError(ctx, err, "Failed to update reserve", slog.String("reserve_id", reserveID))
		return nil, fmt.Errorf("failed to update reserve: %w", err)
	}
	return reserve, nil
}

func (s *reserveService) DeleteReserve(ctx context.Context, userID string, reserveID string) error {
	if _, err := s.getOwnedReserve(ctx, userID, reserveID); err != nil {
		return err
	}
	if err := s.reserveRepo.DeleteReserve(ctx, reserveID); err != nil {
		s.LogError(ctx, err, "Failed to delete reserve", slog.String("reserve_id", reserveID))
		return fmt.Errorf("failed to delete reserve: %w", err)
	}
	s.LogInfo(ctx, "Reserve deleted", slog.String("reserve_id", reserveID))
	return nil
}

func (s *reserveService) getOwnedReserve(ctx context.Context, userID string, reserveID string) (*domain.Reserve, error) {
	reserve, err := s.reserveRepo.FindReserveByID(ctx, reserveID)
	if err != nil {
		return nil, err
	}
	if reserve.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return reserve, nil
}
