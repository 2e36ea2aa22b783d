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

type reimbursementService struct {
	BaseService
	reimbursementRepo portsrepo.ReimbursementRepository
	transactionRepo   portsrepo.TransactionRepository
}

// NewReimbursementService creates the reimbursement service.
func NewReimbursementService(
	reimbursementRepo portsrepo.ReimbursementRepository,
	transactionRepo portsrepo.TransactionRepository,
) portssvc.ReimbursementSvc {
	return &reimbursementService{
		reimbursementRepo: reimbursementRepo,
		transactionRepo:   transactionRepo,
	}
}

var _ portssvc.ReimbursementSvc = (*reimbursementService)(nil)

func (s *reimbursementService) CreateReimbursement(ctx context.Context, userID string, req dto.CreateReimbursementRequest) (*domain.Reimbursement, error) {
	source, err := s.transactionRepo.FindTransactionByID(ctx, req.SourceTransactionID)
	if err != nil {
		return nil, fmt.Errorf("invalid source transaction: %w", err)
	}
	if source.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if source.Type != domain.Expense {
		return nil, fmt.Errorf("source transaction must be an expense: %w", apperrors.ErrValidation)
	}
	if req.ExpectedAmount.Sign() <= 0 {
		return nil, fmt.Errorf("expected amount must be positive: %w", apperrors.ErrValidation)
	}

	expectedDate, err := dto.ParseDate(req.ExpectedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expected date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	reimb := domain.Reimbursement{
		ReimbursementID:     uuid.NewString(),
		UserID:              userID,
		SourceTransactionID: source.TransactionID,
		Status:              domain.ReimbursementPending,
		ExpectedAmount:      req.ExpectedAmount,
		ExpectedDate:        expectedDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reimbursementRepo.SaveReimbursement(ctx, reimb); err != nil {
		s.LogError(ctx, err, "Failed to save reimbursement")
		return nil, fmt.Errorf("failed to save reimbursement: %w", err)
	}

	s.LogInfo(ctx, "Reimbursement created", slog.String("reimbursement_id", reimb.ReimbursementID))
	return &reimb, nil
}

func (s *reimbursementService) ListReimbursements(ctx context.Context, userID string) ([]domain.Reimbursement, error) {
	reimbs, err := s.reimbursementRepo.ListReimbursements(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reimbursements")
		return nil, fmt.Errorf("failed to list reimbursements: %w", err)
	}
	return reimbs, nil
}

func (s *reimbursementService) UpdateReimbursement(ctx context.Context, userID string, reimbursementID string, req dto.UpdateReimbursementRequest) (*domain.Reimbursement, error) {
	reimb, err := s.getOwnedReimbursement(ctx, userID, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimb.Status != domain.ReimbursementPending {
		return nil, fmt.Errorf("only pending reimbursements can be updated: %w", apperrors.ErrValidation)
	}

	if req.ExpectedAmount != nil {
		if req.ExpectedAmount.Sign() <= 0 {
			return nil, fmt.Errorf("expected amount must be positive: %w", apperrors.ErrValidation)
		}
		reimb.ExpectedAmount = *req.ExpectedAmount
	}
	if req.ExpectedDate != nil {
		expectedDate, err := dto.ParseDate(*req.ExpectedDate)
		if err != nil {
			return nil, fmt.Errorf("invalid expected date: %w", apperrors.ErrValidation)
		}
		reimb.ExpectedDate = expectedDate
	}

	reimb.LastUpdatedAt = time.Now()
	reimb.LastUpdatedBy = userID

	if err := s.reimbursementRepo.UpdateReimbursement(ctx, *reimb); err != nil {
		s.LogError(ctx, err, "Failed to update reimbursement", slog.String("reimbursement_id", reimbursementID))
		return nil, fmt.Errorf("failed to update reimbursement: %w", err)
	}
	return reimb, nil
}

func (s *reimbursementService) DeleteReimbursement(ctx context.Context, userID string, reimbursementID string) error {
	if _, err := s.getOwnedReimbursement(ctx, userID, reimbursementID); err != nil {
		return err
	}
	if err := s.reimbursementRepo.DeleteReimbursement(ctx, reimbursementID); err != nil {
		s.LogError(ctx, err, "Failed to delete reimbursement", slog.String("reimbursement_id", reimbursementID))
		return fmt.Errorf("failed to delete reimbursement: %w", err)
	}
	s.LogInfo(ctx, "Reimbursement deleted", slog.String("reimbursement_id", reimbursementID))
	return nil
}

// ReceiveReimbursement records the real settlement income against the source
// expense's account and flips the reimbursement to RECEIVED. Amount and date
// default to the expected values.
func (s *reimbursementService) ReceiveReimbursement(ctx context.Context, userID string, reimbursementID string, req dto.ReceiveReimbursementRequest) (*domain.Reimbursement, error) {
	reimb, err := s.getOwnedReimbursement(ctx, userID, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimb.Status != domain.ReimbursementPending {
		return nil, fmt.Errorf("reimbursement already received: %w", apperrors.ErrValidation)
	}

	source, err := s.transactionRepo.FindTransactionByID(ctx, reimb.SourceTransactionID)
	if err != nil {
		s.LogError(ctx, err, "Source transaction of reimbursement missing", slog.String("reimbursement_id", reimbursementID))
		return nil, fmt.Errorf("source transaction missing: %w", err)
	}

	amount := reimb.ExpectedAmount
	if req.ReceivedAmount != nil {
		if req.ReceivedAmount.Sign() <= 0 {
			return nil, fmt.Errorf("received amount must be positive: %w", apperrors.ErrValidation)
		}
		amount = *req.ReceivedAmount
	}
	receivedDate := reimb.ExpectedDate
	if req.ReceivedDate != "" {
		receivedDate, err = dto.ParseDate(req.ReceivedDate)
		if err != nil {
			return nil, fmt.Errorf("invalid received date: %w", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	settlement := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       source.AccountID,
		CategoryID:      source.CategoryID,
		Amount:          amount,
		Type:            domain.Income,
		Status:          domain.Real,
		Date:            receivedDate,
		EffectiveDate:   receivedDate,
		Description:     source.Description,
		ReimbursementID: reimb.ReimbursementID,
		AuditFields:     audit,
	}

	if err := s.transactionRepo.SaveTransaction(ctx, settlement); err != nil {
		s.LogError(ctx, err, "Failed to save settlement transaction", slog.String("reimbursement_id", reimbursementID))
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}

	reimb.Status = domain.ReimbursementReceived
	reimb.ReceivedAmount = &amount
	reimb.ReceivedDate = &receivedDate
	reimb.ReceivedTransactionID = settlement.TransactionID
	reimb.LastUpdatedAt = now
	reimb.LastUpdatedBy = userID

	if err := s.reimbursementRepo.UpdateReimbursement(ctx, *reimb); err != nil {
		s.LogError(ctx, err, "Failed to mark reimbursement received", slog.String("reimbursement_id", reimbursementID))
		return nil, fmt.Errorf("failed to update reimbursement: %w", err)
	}

	s.LogInfo(ctx, "Reimbursement received", slog.String("reimbursement_id", reimbursementID))
	return reimb, nil
}

func (s *reimbursementService) getOwnedReimbursement(ctx context.Context, userID string, reimbursementID string) (*domain.Reimbursement, error) {
	reimb, err := s.reimbursementRepo.FindReimbursementByID(ctx, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimb.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return reimb, nil
}
