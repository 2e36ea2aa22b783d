package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/jmallet/cashplan/internal/core/forecast"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
)

type forecastService struct {
	BaseService
	accountRepo       portsrepo.AccountReader
	reserveRepo       portsrepo.ReserveRepository
	transactionRepo   portsrepo.TransactionReader
	recurringRepo     portsrepo.RecurringRepository
	reimbursementRepo portsrepo.ReimbursementRepository
}

// NewForecastService creates the forecast service. It is a thin composition
// layer: it loads the user's whole document and runs the projection engine.
func NewForecastService(
	accountRepo portsrepo.AccountReader,
	reserveRepo portsrepo.ReserveRepository,
	transactionRepo portsrepo.TransactionReader,
	recurringRepo portsrepo.RecurringRepository,
	reimbursementRepo portsrepo.ReimbursementRepository,
) portssvc.ForecastSvc {
	return &forecastService{
		accountRepo:       accountRepo,
		reserveRepo:       reserveRepo,
		transactionRepo:   transactionRepo,
		recurringRepo:     recurringRepo,
		reimbursementRepo: reimbursementRepo,
	}
}

var _ portssvc.ForecastSvc = (*forecastService)(nil)

func (s *forecastService) BuildForecast(ctx context.Context, userID string, today time.Time) (*domain.Forecast, error) {
	accounts, reserves, merged, err := s.load(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	result := forecast.BuildForecast(accounts, reserves, merged, today)
	return &result, nil
}

func (s *forecastService) MergedTransactions(ctx context.Context, userID string, today time.Time) ([]domain.Transaction, error) {
	_, _, merged, err := s.load(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// load gathers every engine input and runs generation plus dedup. All four
// generators run on the same transaction snapshot.
func (s *forecastService) load(ctx context.Context, userID string, today time.Time) ([]domain.Account, []domain.Reserve, []domain.Transaction, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	reserves, err := s.reserveRepo.ListReserves(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load reserves for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load reserves: %w", err)
	}
	real, err := s.transactionRepo.ListAllTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	expenseRules, err := s.recurringRepo.ListRecurringExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring expenses for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}
	transferRules, err := s.recurringRepo.ListRecurringTransfers(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring transfers for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load recurring transfers: %w", err)
	}
	reimbs, err := s.reimbursementRepo.ListReimbursements(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load reimbursements for forecast")
		return nil, nil, nil, fmt.Errorf("failed to load reimbursements: %w", err)
	}

	accountsByID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsByID[a.AccountID] = a
	}
	reservesByID := make(map[string]domain.Reserve, len(reserves))
	for _, r := range reserves {
		reservesByID[r.ReserveID] = r
	}

	generatedExpenses := forecast.ExpandRecurringExpenses(expenseRules, today)
	generatedTransfers := forecast.ExpandRecurringTransfers(transferRules, accountsByID, reservesByID, today)
	generatedReimbs := forecast.ProjectReimbursements(reimbs, real)
	generatedDebits := forecast.ProjectDeferredDebits(accounts, real, today)

	merged := forecast.MergeWithReal(real, generatedExpenses, generatedTransfers, generatedReimbs, generatedDebits)
	return accounts, reserves, merged, nil
}
