package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, categoryRepo portsrepo.CategoryRepository) portssvc.BudgetSvc {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.BudgetSvc = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:   uuid.NewString(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}

	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	if _, err := s.getOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// BudgetReport compares each budget against real spending in the calendar
// month containing the given date.
func (s *budgetService) BudgetReport(ctx context.Context, userID string, month time.Time) ([]domain.BudgetReportRow, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets for report")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).AddDate(0, 0, -1)

	spentByCategory, err := s.budgetRepo.SumRealExpensesByCategory(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate spending for report")
		return nil, fmt.Errorf("failed to aggregate spending: %w", err)
	}

	rows := make([]domain.BudgetReportRow, 0, len(budgets))
	for _, b := range budgets {
		spent, ok := spentByCategory[b.CategoryID]
		if !ok {
			spent = decimal.Zero
		}
		rows = append(rows, domain.BudgetReportRow{
			CategoryID: b.CategoryID,
			Budgeted:   b.Amount,
			Spent:      spent,
			Remaining:  b.Amount.Sub(spent),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CategoryID < rows[j].CategoryID })
	return rows, nil
}

func (s *budgetService) getOwnedBudget(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}
