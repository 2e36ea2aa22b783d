package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/jmallet/cashplan/internal/core/services"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

// MockLoanRepository is a mock type for the LoanRepository interface
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

// MockRecurringRepository is a mock type for the RecurringRepository interface
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) FindRecurringExpenseByID(ctx context.Context, ruleID string) (*domain.RecurringExpense, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringExpense), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurringExpenses(ctx context.Context, userID string) ([]domain.RecurringExpense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringExpense), args.Error(1)
}

func (m *MockRecurringRepository) SaveRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRecurringExpense(ctx context.Context, rule domain.RecurringExpense) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRecurringExpense(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

func (m *MockRecurringRepository) FindRecurringTransferByID(ctx context.Context, ruleID string) (*domain.RecurringTransfer, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransfer), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurringTransfers(ctx context.Context, userID string) ([]domain.RecurringTransfer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransfer), args.Error(1)
}

func (m *MockRecurringRepository) SaveRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRecurringTransfer(ctx context.Context, rule domain.RecurringTransfer) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRecurringTransfer(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo      *MockLoanRepository
	mockRecurringRepo *MockRecurringRepository
	mockAccountRepo   *MockAccountReader
	service           portssvc.LoanSvc

	userID    string
	accountID string
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.service = services.NewLoanService(suite.mockLoanRepo, suite.mockRecurringRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).
		Return(&domain.Account{AccountID: suite.accountID, UserID: suite.userID, AccountType: domain.Current}, nil).Maybe()
}

// --- Test Cases ---

func (suite *LoanServiceTestSuite) TestCreateLoan_Success() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		Name:              "Car loan",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-15",
		AccountID:         suite.accountID,
	}

	var savedRule domain.RecurringExpense
	suite.mockRecurringRepo.On("SaveRecurringExpense", ctx, mock.AnythingOfType("domain.RecurringExpense")).
		Run(func(args mock.Arguments) { savedRule = args.Get(1).(domain.RecurringExpense) }).
		Return(nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.NotEmpty(loan.LoanID)
	suite.True(loan.MonthlyPayment.Equal(decimal.NewFromInt(1000)))
	suite.Equal(0, loan.PaymentsMade)
	suite.Equal(savedRule.RecurringExpenseID, loan.RecurringExpenseID)

	// The paired rule carries the installment schedule.
	suite.True(savedRule.Amount.Equal(loan.MonthlyPayment))
	suite.Equal(domain.Monthly, savedRule.Frequency)
	suite.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), savedRule.StartDate)
	suite.Require().NotNil(savedRule.EndDate)
	suite.Equal(time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), *savedRule.EndDate)

	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_PartiallyRepaid_RuleStartsAtFirstUnpaidInstallment() {
	ctx := context.Background()
	paymentsMade := 5
	req := dto.CreateLoanRequest{
		Name:              "Mortgage",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-15",
		AccountID:         suite.accountID,
		PaymentsMade:      &paymentsMade,
	}

	var savedRule domain.RecurringExpense
	suite.mockRecurringRepo.On("SaveRecurringExpense", ctx, mock.AnythingOfType("domain.RecurringExpense")).
		Run(func(args mock.Arguments) { savedRule = args.Get(1).(domain.RecurringExpense) }).
		Return(nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(5, loan.PaymentsMade)
	suite.Equal(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), savedRule.StartDate)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_FromRemainingBalance() {
	ctx := context.Background()
	remaining := decimal.NewFromInt(7000)
	req := dto.CreateLoanRequest{
		Name:              "Mortgage",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-15",
		AccountID:         suite.accountID,
		RemainingBalance:  &remaining,
	}

	suite.mockRecurringRepo.On("SaveRecurringExpense", ctx, mock.AnythingOfType("domain.RecurringExpense")).Return(nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	// 7000 of 12000 left at 1000/month means 5 installments paid.
	suite.Equal(5, loan.PaymentsMade)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_FullyPaid_NoRuleCreated() {
	ctx := context.Background()
	paymentsMade := 12
	req := dto.CreateLoanRequest{
		Name:              "Paid off",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2024-01-15",
		AccountID:         suite.accountID,
		PaymentsMade:      &paymentsMade,
	}

	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Empty(loan.RecurringExpenseID)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveRecurringExpense", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_BothProgressFields_Fails() {
	ctx := context.Background()
	paymentsMade := 3
	remaining := decimal.NewFromInt(9000)
	req := dto.CreateLoanRequest{
		Name:              "Ambiguous",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-15",
		AccountID:         suite.accountID,
		PaymentsMade:      &paymentsMade,
		RemainingBalance:  &remaining,
	}

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(loan)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_OtherUsersAccount_Fails() {
	ctx := context.Background()
	otherAccountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, otherAccountID).
		Return(&domain.Account{AccountID: otherAccountID, UserID: uuid.NewString(), AccountType: domain.Current}, nil).Once()

	req := dto.CreateLoanRequest{
		Name:              "Not mine",
		Principal:         decimal.NewFromInt(1000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        10,
		StartDate:         "2026-01-15",
		AccountID:         otherAccountID,
	}

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(loan)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoan_SaveFails_RollsBackRule() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		Name:              "Car loan",
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         "2026-01-15",
		AccountID:         suite.accountID,
	}

	suite.mockRecurringRepo.On("SaveRecurringExpense", ctx, mock.AnythingOfType("domain.RecurringExpense")).Return(nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(errors.New("insert failed")).Once()
	suite.mockRecurringRepo.On("DeleteRecurringExpense", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	loan, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestDeleteLoan_DeletesPairedRule() {
	ctx := context.Background()
	loanID := uuid.NewString()
	ruleID := uuid.NewString()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).
		Return(&domain.Loan{LoanID: loanID, UserID: suite.userID, RecurringExpenseID: ruleID}, nil).Once()
	suite.mockRecurringRepo.On("DeleteRecurringExpense", ctx, ruleID).Return(nil).Once()
	suite.mockLoanRepo.On("DeleteLoan", ctx, loanID).Return(nil).Once()

	err := suite.service.DeleteLoan(ctx, suite.userID, loanID)

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestLoanStatus_MidLife() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:            loanID,
		UserID:            suite.userID,
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:    decimal.NewFromInt(1000),
	}
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	// Installments fell on Jan 15, Feb 15 and Mar 15.
	status, err := suite.service.LoanStatus(ctx, suite.userID, loanID, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(3, status.PaymentsMade)
	suite.Equal(9, status.PaymentsRemaining)
	suite.True(status.RemainingBalance.Equal(decimal.NewFromInt(9000)))
	suite.True(status.TotalPaid.Equal(decimal.NewFromInt(3000)))
	suite.True(status.TotalInterest.IsZero())
	suite.Equal("2026-12-15", status.PayoffDate)
}

func (suite *LoanServiceTestSuite) TestLoanStatus_MonthEndStart_FollowsCalendarRollOver() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:            loanID,
		UserID:            suite.userID,
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:    decimal.NewFromInt(1000),
	}
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Twice()

	// Jan 31 + 1 month rolls over February to Mar 3, matching the dates the
	// paired rule generates. By Mar 2 only the first installment has fallen.
	status, err := suite.service.LoanStatus(ctx, suite.userID, loanID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(1, status.PaymentsMade)

	status, err = suite.service.LoanStatus(ctx, suite.userID, loanID, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(2, status.PaymentsMade)
}

func (suite *LoanServiceTestSuite) TestLoanStatus_FloorsAtRecordedProgress() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:            loanID,
		UserID:            suite.userID,
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:    decimal.NewFromInt(1000),
		PaymentsMade:      4,
	}
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	// asOf before the start date still reports the recorded progress.
	status, err := suite.service.LoanStatus(ctx, suite.userID, loanID, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(4, status.PaymentsMade)
}

func (suite *LoanServiceTestSuite) TestLoanStatus_ClampsAtTerm() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:            loanID,
		UserID:            suite.userID,
		Principal:         decimal.NewFromInt(12000),
		AnnualRatePercent: decimal.Zero,
		TermMonths:        12,
		StartDate:         time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment:    decimal.NewFromInt(1000),
	}
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	status, err := suite.service.LoanStatus(ctx, suite.userID, loanID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(12, status.PaymentsMade)
	suite.Equal(0, status.PaymentsRemaining)
	suite.True(status.RemainingBalance.IsZero())
}

func (suite *LoanServiceTestSuite) TestLoanStatus_OtherUsersLoan_NotFound() {
	ctx := context.Background()
	loanID := uuid.NewString()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).
		Return(&domain.Loan{LoanID: loanID, UserID: uuid.NewString()}, nil).Once()

	status, err := suite.service.LoanStatus(ctx, suite.userID, loanID, time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(status)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
