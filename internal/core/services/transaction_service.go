package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountReader
	reserveRepo     portsrepo.ReserveRepository
	recurringRepo   portsrepo.RecurringRepository
}

// NewTransactionService creates the transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountReader,
	reserveRepo portsrepo.ReserveRepository,
	recurringRepo portsrepo.RecurringRepository,
) portssvc.TransactionSvc {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		reserveRepo:     reserveRepo,
		recurringRepo:   recurringRepo,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.checkAccountOwned(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if req.ReserveID != "" {
		if err := s.checkReserveOwned(ctx, userID, req.ReserveID, req.AccountID); err != nil {
			return nil, err
		}
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", apperrors.ErrValidation)
	}
	effectiveDate := date
	if req.EffectiveDate != "" {
		effectiveDate, err = dto.ParseDate(req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("invalid effective date: %w", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		ReserveID:     req.ReserveID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Type:          req.Type,
		Status:        domain.Real,
		Date:          date,
		EffectiveDate: effectiveDate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.getOwnedTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	from, err := dto.ParseDatePtr(&params.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
	}
	to, err := dto.ParseDatePtr(&params.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
	}

	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		ReserveID:  params.ReserveID,
		CategoryID: params.CategoryID,
		From:       from,
		To:         to,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		if err := s.checkAccountOwned(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		txn.AccountID = *req.AccountID
	}
	if req.ReserveID != nil {
		if *req.ReserveID != "" {
			if err := s.checkReserveOwned(ctx, userID, *req.ReserveID, txn.AccountID); err != nil {
				return nil, err
			}
		}
		txn.ReserveID = *req.ReserveID
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if req.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", apperrors.ErrValidation)
		}
		// Keep the dates coupled when only Date moves.
		if txn.EffectiveDate.Equal(txn.Date) && req.EffectiveDate == nil {
			txn.EffectiveDate = date
		}
		txn.Date = date
	}
	if req.EffectiveDate != nil {
		effectiveDate, err := dto.ParseDate(*req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("invalid effective date: %w", apperrors.ErrValidation)
		}
		txn.EffectiveDate = effectiveDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	// Transfer legs are deleted together so balances stay consistent.
	if txn.TransferID != "" {
		if err := s.transactionRepo.DeleteTransactionsByTransferID(ctx, txn.TransferID); err != nil {
			s.LogError(ctx, err, "Failed to delete transfer legs", slog.String("transfer_id", txn.TransferID))
			return fmt.Errorf("failed to delete transfer: %w", err)
		}
		s.LogInfo(ctx, "Transfer deleted", slog.String("transfer_id", txn.TransferID))
		return nil
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ValidateOccurrence turns one generated occurrence into persisted real
// transactions. The stored rule reference and date reproduce the dedup key,
// so the generated placeholder disappears from subsequent forecasts.
func (s *transactionService) ValidateOccurrence(ctx context.Context, userID string, req dto.ValidateOccurrenceRequest) ([]domain.Transaction, error) {
	if (req.RecurringExpenseID == "") == (req.RecurringTransferID == "") {
		return nil, fmt.Errorf("exactly one of recurringExpenseID and recurringTransferID is required: %w", apperrors.ErrValidation)
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", apperrors.ErrValidation)
	}

	if req.RecurringExpenseID != "" {
		return s.validateExpenseOccurrence(ctx, userID, req.RecurringExpenseID, date, req.Amount)
	}
	return s.validateTransferOccurrence(ctx, userID, req.RecurringTransferID, date, req.Amount)
}

func (s *transactionService) validateExpenseOccurrence(ctx context.Context, userID string, ruleID string, date time.Time, amountOverride *decimal.Decimal) ([]domain.Transaction, error) {
	rule, err := s.recurringRepo.FindRecurringExpenseByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	amount := rule.Amount
	if amountOverride != nil {
		amount = *amountOverride
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             userID,
		AccountID:          rule.AccountID,
		CategoryID:         rule.CategoryID,
		Amount:             amount,
		Type:               domain.Expense,
		Status:             domain.Real,
		Date:               date,
		EffectiveDate:      date,
		Description:        rule.Name,
		RecurringExpenseID: rule.RecurringExpenseID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save validated occurrence", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to save validated occurrence: %w", err)
	}

	s.LogInfo(ctx, "Occurrence validated", slog.String("rule_id", ruleID), slog.String("date", dto.FormatDate(date)))
	return []domain.Transaction{txn}, nil
}

func (s *transactionService) validateTransferOccurrence(ctx context.Context, userID string, ruleID string, date time.Time, amountOverride *decimal.Decimal) ([]domain.Transaction, error) {
	rule, err := s.recurringRepo.FindRecurringTransferByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	srcAccountID, srcReserveID, err := s.resolveEndpoint(ctx, userID, rule.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid source endpoint: %w", err)
	}
	dstAccountID, dstReserveID, err := s.resolveEndpoint(ctx, userID, rule.Destination)
	if err != nil {
		return nil, fmt.Errorf("invalid destination endpoint: %w", err)
	}

	amount := rule.Amount
	if amountOverride != nil {
		amount = *amountOverride
	}

	now := time.Now()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	legs := []domain.Transaction{
		{
			TransactionID:       uuid.NewString(),
			UserID:              userID,
			AccountID:           srcAccountID,
			ReserveID:           srcReserveID,
			Amount:              amount,
			Type:                domain.Expense,
			Status:              domain.Real,
			Date:                date,
			EffectiveDate:       date,
			Description:         rule.Name,
			TransferID:          transferID,
			RecurringTransferID: rule.RecurringTransferID,
			AuditFields:         audit,
		},
		{
			TransactionID:       uuid.NewString(),
			UserID:              userID,
			AccountID:           dstAccountID,
			ReserveID:           dstReserveID,
			Amount:              amount,
			Type:                domain.Income,
			Status:              domain.Real,
			Date:                date,
			EffectiveDate:       date,
			Description:         rule.Name,
			TransferID:          transferID,
			RecurringTransferID: rule.RecurringTransferID,
			AuditFields:         audit,
		},
	}

	if err := s.transactionRepo.SaveTransactions(ctx, legs); err != nil {
		s.LogError(ctx, err, "Failed to save validated transfer", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to save validated transfer: %w", err)
	}

	s.LogInfo(ctx, "Transfer occurrence validated", slog.String("rule_id", ruleID), slog.String("date", dto.FormatDate(date)))
	return legs, nil
}

// resolveEndpoint maps a transfer endpoint to the account it moves money on,
// plus the reserve when the endpoint is one.
func (s *transactionService) resolveEndpoint(ctx context.Context, userID string, ep domain.TransferEndpoint) (accountID, reserveID string, err error) {
	switch ep.Kind {
	case domain.EndpointAccount:
		if err := s.checkAccountOwned(ctx, userID, ep.ID); err != nil {
			return "", "", err
		}
		return ep.ID, "", nil
	case domain.EndpointReserve:
		reserve, err := s.reserveRepo.FindReserveByID(ctx, ep.ID)
		if err != nil {
			return "", "", err
		}
		if reserve.UserID != userID {
			return "", "", apperrors.ErrNotFound
		}
		return reserve.AccountID, reserve.ReserveID, nil
	default:
		return "", "", apperrors.ErrValidation
	}
}

func (s *transactionService) checkAccountOwned(ctx context.Context, userID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *transactionService) checkReserveOwned(ctx context.Context, userID string, reserveID string, accountID string) error {
	reserve, err := s.reserveRepo.FindReserveByID(ctx, reserveID)
	if err != nil {
		return fmt.Errorf("invalid reserve: %w", err)
	}
	if reserve.UserID != userID {
		return apperrors.ErrNotFound
	}
	if accountID != "" && reserve.AccountID != accountID {
		return fmt.Errorf("reserve belongs to a different account: %w", apperrors.ErrValidation)
	}
	return nil
}

func (s *transactionService) getOwnedTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}
