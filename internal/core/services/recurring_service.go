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

type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepository
	accountRepo   portsrepo.AccountReader
	reserveRepo   portsrepo.ReserveRepository
}

// NewRecurringService creates the recurring-rule service.
func NewRecurringService(
	recurringRepo portsrepo.RecurringRepository,
	accountRepo portsrepo.AccountReader,
	reserveRepo portsrepo.ReserveRepository,
) portssvc.RecurringSvc {
	return &recurringService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		reserveRepo:   reserveRepo,
	}
}

var _ portssvc.RecurringSvc = (*recurringService)(nil)

func (s *recurringService) CreateRecurringExpense(ctx context.Context, userID string, req dto.CreateRecurringExpenseRequest) (*domain.RecurringExpense, error) {
	if err := s.checkAccountOwned(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
	}
	endDate, err := dto.ParseDatePtr(&req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("end date before start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	rule := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		UserID:             userID,
		Name:               req.Name,
		Amount:             req.Amount,
		Frequency:          req.Frequency,
		StartDate:          startDate,
		EndDate:            endDate,
		AccountID:          req.AccountID,
		CategoryID:         req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recurringRepo.SaveRecurringExpense(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save recurring expense")
		return nil, fmt.Errorf("failed to save recurring expense: %w", err)
	}

	s.LogInfo(ctx, "Recurring expense created", slog.String("rule_id", rule.RecurringExpenseID))
	return &rule, nil
}

func (s *recurringService) ListRecurringExpenses(ctx context.Context, userID string) ([]domain.RecurringExpense, error) {
	rules, err := s.recurringRepo.ListRecurringExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring expenses")
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}
	return rules, nil
}

func (s *recurringService) UpdateRecurringExpense(ctx context.Context, userID string, ruleID string, req dto.UpdateRecurringExpenseRequest) (*domain.RecurringExpense, error) {
	rule, err := s.getOwnedExpenseRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		rule.Amount = *req.Amount
	}
	if req.Frequency != nil {
		rule.Frequency = *req.Frequency
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
		}
		rule.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDatePtr(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
		}
		rule.EndDate = endDate
	}
	if rule.EndDate != nil && rule.EndDate.Before(rule.StartDate) {
		return nil, fmt.Errorf("end date before start date: %w", apperrors.ErrValidation)
	}
	if req.AccountID != nil {
		if err := s.checkAccountOwned(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		rule.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		rule.CategoryID = *req.CategoryID
	}

	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateRecurringExpense(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update recurring expense", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}
	return rule, nil
}

func (s *recurringService) DeleteRecurringExpense(ctx context.Context, userID string, ruleID string) error {
	if _, err := s.getOwnedExpenseRule(ctx, userID, ruleID); err != nil {
		return err
	}
	if err := s.recurringRepo.DeleteRecurringExpense(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring expense", slog.String("rule_id", ruleID))
		return fmt.Errorf("failed to delete recurring expense: %w", err)
	}
	s.LogInfo(ctx, "Recurring expense deleted", slog.String("rule_id", ruleID))
	return nil
}

func (s *recurringService) CreateRecurringTransfer(ctx context.Context, userID string, req dto.CreateRecurringTransferRequest) (*domain.RecurringTransfer, error) {
	source, err := s.parseOwnedEndpoint(ctx, userID, req.SourceRef)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}
	destination, err := s.parseOwnedEndpoint(ctx, userID, req.DestinationRef)
	if err != nil {
		return nil, fmt.Errorf("invalid destination: %w", err)
	}
	if source == destination {
		return nil, fmt.Errorf("source and destination must differ: %w", apperrors.ErrValidation)
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
	}
	endDate, err := dto.ParseDatePtr(&req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("end date before start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	rule := domain.RecurringTransfer{
		RecurringTransferID: uuid.NewString(),
		UserID:              userID,
		Name:                req.Name,
		Amount:              req.Amount,
		Frequency:           req.Frequency,
		StartDate:           startDate,
		EndDate:             endDate,
		Source:              source,
		Destination:         destination,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recurringRepo.SaveRecurringTransfer(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save recurring transfer")
		return nil, fmt.Errorf("failed to save recurring transfer: %w", err)
	}

	s.LogInfo(ctx, "Recurring transfer created", slog.String("rule_id", rule.RecurringTransferID))
	return &rule, nil
}

func (s *recurringService) ListRecurringTransfers(ctx context.Context, userID string) ([]domain.RecurringTransfer, error) {
	rules, err := s.recurringRepo.ListRecurringTransfers(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring transfers")
		return nil, fmt.Errorf("failed to list recurring transfers: %w", err)
	}
	return rules, nil
}

func (s *recurringService) UpdateRecurringTransfer(ctx context.Context, userID string, ruleID string, req dto.UpdateRecurringTransferRequest) (*domain.RecurringTransfer, error) {
	rule, err := s.getOwnedTransferRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		rule.Amount = *req.Amount
	}
	if req.Frequency != nil {
		rule.Frequency = *req.Frequency
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
		}
		rule.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDatePtr(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
		}
		rule.EndDate = endDate
	}
	if rule.EndDate != nil && rule.EndDate.Before(rule.StartDate) {
		return nil, fmt.Errorf("end date before start date: %w", apperrors.ErrValidation)
	}
	if req.SourceRef != nil {
		source, err := s.parseOwnedEndpoint(ctx, userID, *req.SourceRef)
		if err != nil {
			return nil, fmt.Errorf("invalid source: %w", err)
		}
		rule.Source = source
	}
	if req.DestinationRef != nil {
		destination, err := s.parseOwnedEndpoint(ctx, userID, *req.DestinationRef)
		if err != nil {
			return nil, fmt.Errorf("invalid destination: %w", err)
		}
		rule.Destination = destination
	}
	if rule.Source == rule.Destination {
		return nil, fmt.Errorf("source and destination must differ: %w", apperrors.ErrValidation)
	}

	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateRecurringTransfer(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update recurring transfer", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to update recurring transfer: %w", err)
	}
	return rule, nil
}

func (s *recurringService) DeleteRecurringTransfer(ctx context.Context, userID string, ruleID string) error {
	if _, err := s.getOwnedTransferRule(ctx, userID, ruleID); err != nil {
		return err
	}
	if err := s.recurringRepo.DeleteRecurringTransfer(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring transfer", slog.String("rule_id", ruleID))
		return fmt.Errorf("failed to delete recurring transfer: %w", err)
	}
	s.LogInfo(ctx, "Recurring transfer deleted", slog.String("rule_id", ruleID))
	return nil
}

// parseOwnedEndpoint parses a transfer ref and verifies the referenced
// account or reserve belongs to the user.
func (s *recurringService) parseOwnedEndpoint(ctx context.Context, userID string, ref string) (domain.TransferEndpoint, error) {
	ep, err := domain.ParseTransferRef(ref)
	if err != nil {
		return domain.TransferEndpoint{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	switch ep.Kind {
	case domain.EndpointAccount:
		if err := s.checkAccountOwned(ctx, userID, ep.ID); err != nil {
			return domain.TransferEndpoint{}, err
		}
	case domain.EndpointReserve:
		reserve, err := s.reserveRepo.FindReserveByID(ctx, ep.ID)
		if err != nil {
			return domain.TransferEndpoint{}, err
		}
		if reserve.UserID != userID {
			return domain.TransferEndpoint{}, apperrors.ErrNotFound
		}
	}
	return ep, nil
}

func (s *recurringService) checkAccountOwned(ctx context.Context, userID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *recurringService) getOwnedExpenseRule(ctx context.Context, userID string, ruleID string) (*domain.RecurringExpense, error) {
	rule, err := s.recurringRepo.FindRecurringExpenseByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return rule, nil
}

func (s *recurringService) getOwnedTransferRule(ctx context.Context, userID string, ruleID string) (*domain.RecurringTransfer, error) {
	rule, err := s.recurringRepo.FindRecurringTransferByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return rule, nil
}
