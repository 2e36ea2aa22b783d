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
	"github.com/jmallet/cashplan/internal/core/forecast"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionReader
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionReader) portssvc.AccountSvc {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now()

	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		InitialBalance: req.InitialBalance,
		Icon:           req.Icon,
		Color:          req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.AccountType == domain.DeferredDebit {
		if req.LinkedAccountID == nil || req.DebitDay == nil {
			return nil, fmt.Errorf("deferred debit account requires linkedAccountID and debitDay: %w", apperrors.ErrValidation)
		}
		linked, err := s.getOwnedAccount(ctx, userID, *req.LinkedAccountID)
		if err != nil {
			s.LogError(ctx, err, "Linked account not usable", slog.String("linked_account_id", *req.LinkedAccountID))
			return nil, fmt.Errorf("invalid linked account: %w", err)
		}
		if linked.AccountType == domain.DeferredDebit {
			return nil, fmt.Errorf("linked account cannot itself be deferred debit: %w", apperrors.ErrValidation)
		}
		account.LinkedAccountID = linked.AccountID
		account.DebitDay = *req.DebitDay
	} else if req.LinkedAccountID != nil || req.DebitDay != nil {
		return nil, fmt.Errorf("linkedAccountID and debitDay only apply to deferred debit accounts: %w", apperrors.ErrValidation)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account")
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return s.getOwnedAccount(ctx, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.InitialBalance != nil {
		account.InitialBalance = *req.InitialBalance
	}
	if req.LinkedAccountID != nil || req.DebitDay != nil {
		if account.AccountType != domain.DeferredDebit {
			return nil, fmt.Errorf("linkedAccountID and debitDay only apply to deferred debit accounts: %w", apperrors.ErrValidation)
		}
		if req.LinkedAccountID != nil {
			linked, err := s.getOwnedAccount(ctx, userID, *req.LinkedAccountID)
			if err != nil {
				return nil, fmt.Errorf("invalid linked account: %w", err)
			}
			if linked.AccountType == domain.DeferredDebit {
				return nil, fmt.Errorf("linked account cannot itself be deferred debit: %w", apperrors.ErrValidation)
			}
			account.LinkedAccountID = linked.AccountID
		}
		if req.DebitDay != nil {
			account.DebitDay = *req.DebitDay
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) ArchiveAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.getOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.ArchiveAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to archive account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to archive account: %w", err)
	}
	s.LogInfo(ctx, "Account archived", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) CurrentBalance(ctx context.Context, userID string, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := s.transactionRepo.ListAllTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}
	return forecast.CurrentBalance(*account, txns, cutoff), nil
}

// getOwnedAccount loads an account and hides other users' accounts behind
// ErrNotFound.
func (s *accountService) getOwnedAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}
