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

	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/core/services"
)

// MockReserveRepository is a mock type for the ReserveRepository interface
type MockReserveRepository struct {
	mock.Mock
}

func (m *MockReserveRepository) FindReserveByID(ctx context.Context, reserveID string) (*domain.Reserve, error) {
	args := m.Called(ctx, reserveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reserve), args.Error(1)
}

func (m *MockReserveRepository) ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reserve), args.Error(1)
}

func (m *MockReserveRepository) SaveReserve(ctx context.Context, reserve domain.Reserve) error {
	args := m.Called(ctx, reserve)
	return args.Error(0)
}

func (m *MockReserveRepository) UpdateReserve(ctx context.Context, reserve domain.Reserve) error {
	args := m.Called(ctx, reserve)
	return args.Error(0)
}

func (m *MockReserveRepository) DeleteReserve(ctx context.Context, reserveID string) error {
	args := m.Called(ctx, reserveID)
	return args.Error(0)
}

// MockTransactionReader is a mock type for the TransactionReader interface
type MockTransactionReader struct {
	mock.Mock
}

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockReimbursementRepository is a mock type for the ReimbursementRepository interface
type MockReimbursementRepository struct {
	mock.Mock
}

func (m *MockReimbursementRepository) FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error) {
	args := m.Called(ctx, reimbursementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) ListReimbursements(ctx context.Context, userID string) ([]domain.Reimbursement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reimbursement), args.Error(1)
}

func (m *MockReimbursementRepository) SaveReimbursement(ctx context.Context, reimb domain.Reimbursement) error {
	args := m.Called(ctx, reimb)
	return args.Error(0)
}

func (m *MockReimbursementRepository) UpdateReimbursement(ctx context.Context, reimb domain.Reimbursement) error {
	args := m.Called(ctx, reimb)
	return args.Error(0)
}

func (m *MockReimbursementRepository) DeleteReimbursement(ctx context.Context, reimbursementID string) error {
	args := m.Called(ctx, reimbursementID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ForecastServiceTestSuite struct {
	suite.Suite
	mockAccountRepo       *MockAccountReader
	mockReserveRepo       *MockReserveRepository
	mockTransactionRepo   *MockTransactionReader
	mockRecurringRepo     *MockRecurringRepository
	mockReimbursementRepo *MockReimbursementRepository
	service               portssvc.ForecastSvc

	userID    string
	accountID string
	today     time.Time
}

func (suite *ForecastServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockReserveRepo = new(MockReserveRepository)
	suite.mockTransactionRepo = new(MockTransactionReader)
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockReimbursementRepo = new(MockReimbursementRepository)
	suite.service = services.NewForecastService(
		suite.mockAccountRepo,
		suite.mockReserveRepo,
		suite.mockTransactionRepo,
		suite.mockRecurringRepo,
		suite.mockReimbursementRepo,
	)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

// stubDocument primes every repository list call. Pass nil for parts the test
// does not care about.
func (suite *ForecastServiceTestSuite) stubDocument(
	accounts []domain.Account,
	reserves []domain.Reserve,
	txns []domain.Transaction,
	expenseRules []domain.RecurringExpense,
	transferRules []domain.RecurringTransfer,
	reimbs []domain.Reimbursement,
) {
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).Return(accounts, nil)
	suite.mockReserveRepo.On("ListReserves", mock.Anything, suite.userID).Return(reserves, nil)
	suite.mockTransactionRepo.On("ListAllTransactions", mock.Anything, suite.userID).Return(txns, nil)
	suite.mockRecurringRepo.On("ListRecurringExpenses", mock.Anything, suite.userID).Return(expenseRules, nil)
	suite.mockRecurringRepo.On("ListRecurringTransfers", mock.Anything, suite.userID).Return(transferRules, nil)
	suite.mockReimbursementRepo.On("ListReimbursements", mock.Anything, suite.userID).Return(reimbs, nil)
}

func (suite *ForecastServiceTestSuite) checkingAccount(initialBalance int64) domain.Account {
	return domain.Account{
		AccountID:      suite.accountID,
		UserID:         suite.userID,
		Name:           "Checking",
		AccountType:    domain.Current,
		InitialBalance: decimal.NewFromInt(initialBalance),
	}
}

// --- Test Cases ---

func (suite *ForecastServiceTestSuite) TestBuildForecast_RecurringExpenseLowersMonthlyBalances() {
	ctx := context.Background()
	rule := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		UserID:             suite.userID,
		Name:               "Rent",
		Amount:             decimal.NewFromInt(100),
		Frequency:          domain.Monthly,
		StartDate:          suite.today,
		AccountID:          suite.accountID,
	}
	suite.stubDocument(
		[]domain.Account{suite.checkingAccount(1000)},
		nil, nil,
		[]domain.RecurringExpense{rule},
		nil, nil,
	)

	forecast, err := suite.service.BuildForecast(ctx, suite.userID, suite.today)

	suite.Require().NoError(err)
	suite.Require().Len(forecast.Snapshots, 12)

	first := forecast.Snapshots[0]
	suite.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), first.Month)
	suite.True(first.AccountBalances[suite.accountID].Equal(decimal.NewFromInt(900)))
	suite.True(first.TotalBalance.Equal(decimal.NewFromInt(900)))

	// One occurrence per month through February 2027.
	last := forecast.Snapshots[11]
	suite.Equal(time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), last.Month)
	suite.True(last.AccountBalances[suite.accountID].Equal(decimal.NewFromInt(-200)))
}

func (suite *ForecastServiceTestSuite) TestBuildForecast_ValidatedOccurrenceNotDoubleCounted() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	rule := domain.RecurringExpense{
		RecurringExpenseID: ruleID,
		UserID:             suite.userID,
		Name:               "Rent",
		Amount:             decimal.NewFromInt(100),
		Frequency:          domain.Monthly,
		StartDate:          suite.today,
		AccountID:          suite.accountID,
	}
	// The March occurrence was validated into a real transaction.
	validated := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             suite.userID,
		AccountID:          suite.accountID,
		Amount:             decimal.NewFromInt(100),
		Type:               domain.Expense,
		Status:             domain.Real,
		Date:               suite.today,
		EffectiveDate:      suite.today,
		RecurringExpenseID: ruleID,
	}
	suite.stubDocument(
		[]domain.Account{suite.checkingAccount(1000)},
		nil,
		[]domain.Transaction{validated},
		[]domain.RecurringExpense{rule},
		nil, nil,
	)

	forecast, err := suite.service.BuildForecast(ctx, suite.userID, suite.today)

	suite.Require().NoError(err)
	// March counts the expense exactly once.
	suite.True(forecast.Snapshots[0].AccountBalances[suite.accountID].Equal(decimal.NewFromInt(900)))
}

func (suite *ForecastServiceTestSuite) TestMergedTransactions_NewestFirstWithStatuses() {
	ctx := context.Background()
	real := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Amount:        decimal.NewFromInt(50),
		Type:          domain.Expense,
		Status:        domain.Real,
		Date:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EffectiveDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	rule := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		UserID:             suite.userID,
		Name:               "Gym",
		Amount:             decimal.NewFromInt(30),
		Frequency:          domain.Monthly,
		StartDate:          suite.today,
		AccountID:          suite.accountID,
	}
	suite.stubDocument(
		[]domain.Account{suite.checkingAccount(1000)},
		nil,
		[]domain.Transaction{real},
		[]domain.RecurringExpense{rule},
		nil, nil,
	)

	merged, err := suite.service.MergedTransactions(ctx, suite.userID, suite.today)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(merged)

	// Newest first: the last projected occurrence leads, the booked
	// transaction from February trails.
	for i := 1; i < len(merged); i++ {
		suite.False(merged[i].Date.After(merged[i-1].Date))
	}
	suite.Equal(real.TransactionID, merged[len(merged)-1].TransactionID)

	statuses := map[domain.TransactionStatus]int{}
	for _, t := range merged {
		statuses[t.Status]++
	}
	suite.Equal(1, statuses[domain.Real])
	suite.Equal(12, statuses[domain.Potential])
}

func (suite *ForecastServiceTestSuite) TestBuildForecast_RepositoryErrorPropagates() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.userID).
		Return(nil, errors.New("connection reset")).Once()

	forecast, err := suite.service.BuildForecast(ctx, suite.userID, suite.today)

	suite.Require().Error(err)
	suite.Nil(forecast)
}

func TestForecastServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ForecastServiceTestSuite))
}
