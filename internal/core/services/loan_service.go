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
	"github.com/jmallet/cashplan/internal/utils/amortization"
)

type loanService struct {
	BaseService
	loanRepo      portsrepo.LoanRepository
	recurringRepo portsrepo.RecurringRepository
	accountRepo   portsrepo.AccountReader
}

// NewLoanService creates the loan service.
func NewLoanService(
	loanRepo portsrepo.LoanRepository,
	recurringRepo portsrepo.RecurringRepository,
	accountRepo portsrepo.AccountReader,
) portssvc.LoanSvc {
	return &loanService{
		loanRepo:      loanRepo,
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.LoanSvc = (*loanService)(nil)

// CreateLoan registers a loan and creates its paired monthly installment
// rule. The rule starts at the first unpaid installment so already-paid
// months generate nothing.
func (s *loanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if req.Principal.Sign() <= 0 {
		return nil, fmt.Errorf("principal must be positive: %w", apperrors.ErrValidation)
	}
	if req.AnnualRatePercent.Sign() < 0 {
		return nil, fmt.Errorf("rate cannot be negative: %w", apperrors.ErrValidation)
	}
	if req.PaymentsMade != nil && req.RemainingBalance != nil {
		return nil, fmt.Errorf("paymentsMade and remainingBalance are mutually exclusive: %w", apperrors.ErrValidation)
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
	}

	principal := req.Principal.InexactFloat64()
	rate := req.AnnualRatePercent.InexactFloat64()

	payment := amortization.MonthlyPayment(principal, rate, req.TermMonths)
	monthlyPayment := decimal.NewFromFloat(payment).Round(2)

	paymentsMade := 0
	switch {
	case req.PaymentsMade != nil:
		paymentsMade = *req.PaymentsMade
	case req.RemainingBalance != nil:
		paymentsMade = amortization.PaymentsMadeFromRemainingBalance(principal, rate, req.TermMonths, req.RemainingBalance.InexactFloat64())
	}
	if paymentsMade > req.TermMonths {
		return nil, fmt.Errorf("paymentsMade exceeds term: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	loan := domain.Loan{
		LoanID:            uuid.NewString(),
		UserID:            userID,
		Name:              req.Name,
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        req.TermMonths,
		StartDate:         startDate,
		MonthlyPayment:    monthlyPayment,
		PaymentsMade:      paymentsMade,
		AccountID:         req.AccountID,
		CategoryID:        req.CategoryID,
		AuditFields:       audit,
	}

	if paymentsMade < req.TermMonths {
		installmentEnd := startDate.AddDate(0, req.TermMonths-1, 0)
		rule := domain.RecurringExpense{
			RecurringExpenseID: uuid.NewString(),
			UserID:             userID,
			Name:               req.Name,
			Amount:             monthlyPayment,
			Frequency:          domain.Monthly,
			StartDate:          startDate.AddDate(0, paymentsMade, 0),
			EndDate:            &installmentEnd,
			AccountID:          req.AccountID,
			CategoryID:         req.CategoryID,
			AuditFields:        audit,
		}
		if err := s.recurringRepo.SaveRecurringExpense(ctx, rule); err != nil {
			s.LogError(ctx, err, "Failed to save loan installment rule")
			return nil, fmt.Errorf("failed to save installment rule: %w", err)
		}
		loan.RecurringExpenseID = rule.RecurringExpenseID
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan")
		if loan.RecurringExpenseID != "" {
			if derr := s.recurringRepo.DeleteRecurringExpense(ctx, loan.RecurringExpenseID); derr != nil {
				s.LogError(ctx, derr, "Failed to roll back installment rule", slog.String("rule_id", loan.RecurringExpenseID))
			}
		}
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	s.LogInfo(ctx, "Loan created", slog.String("loan_id", loan.LoanID))
	return &loan, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, userID string, loanID string) (*domain.Loan, error) {
	return s.getOwnedLoan(ctx, userID, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// DeleteLoan removes the loan and its paired installment rule.
func (s *loanService) DeleteLoan(ctx context.Context, userID string, loanID string) error {
	loan, err := s.getOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return err
	}

	if loan.RecurringExpenseID != "" {
		if err := s.recurringRepo.DeleteRecurringExpense(ctx, loan.RecurringExpenseID); err != nil {
			s.LogError(ctx, err, "Failed to delete paired installment rule", slog.String("rule_id", loan.RecurringExpenseID))
			return fmt.Errorf("failed to delete installment rule: %w", err)
		}
	}

	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	s.LogInfo(ctx, "Loan deleted", slog.String("loan_id", loanID))
	return nil
}

// LoanStatus derives the amortization position of a loan as of a date.
// Installments fall monthly from StartDate; the count is floored at the
// progress recorded when the loan was created.
func (s *loanService) LoanStatus(ctx context.Context, userID string, loanID string, asOf time.Time) (*dto.LoanStatusResponse, error) {
	loan, err := s.getOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	payments := installmentsElapsed(loan.StartDate, asOf)
	if payments < loan.PaymentsMade {
		payments = loan.PaymentsMade
	}
	if payments > loan.TermMonths {
		payments = loan.TermMonths
	}

	principal := loan.Principal.InexactFloat64()
	rate := loan.AnnualRatePercent.InexactFloat64()

	remaining := decimal.NewFromFloat(amortization.RemainingBalance(principal, rate, loan.TermMonths, payments)).Round(2)
	totalPaid := loan.MonthlyPayment.Mul(decimal.NewFromInt(int64(payments)))
	principalRepaid := loan.Principal.Sub(remaining)

	return &dto.LoanStatusResponse{
		LoanID:            loan.LoanID,
		AsOf:              dto.FormatDate(asOf),
		MonthlyPayment:    loan.MonthlyPayment,
		PaymentsMade:      payments,
		PaymentsRemaining: loan.TermMonths - payments,
		RemainingBalance:  remaining,
		TotalPaid:         totalPaid,
		TotalInterest:     totalPaid.Sub(principalRepaid),
		PayoffDate:        dto.FormatDate(loan.StartDate.AddDate(0, loan.TermMonths-1, 0)),
	}, nil
}

// installmentsElapsed counts monthly installment dates from start through
// asOf, inclusive. It steps with time.AddDate the same way the recurring
// schedule does, so the count always agrees with the occurrences the paired
// rule expands to, including the end-of-month roll-over (Jan 31, Mar 3, ...).
// A closed-form month difference would diverge there.
func installmentsElapsed(start, asOf time.Time) int {
	if asOf.Before(start) {
		return 0
	}
	n := 0
	for d := start; !d.After(asOf); d = d.AddDate(0, 1, 0) {
		n++
	}
	return n
}

func (s *loanService) getOwnedLoan(ctx context.Context, userID string, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return loan, nil
}
