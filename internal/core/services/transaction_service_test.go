package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/core/services"
	"github.com/jmallet/cashplan/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByTransferID(ctx context.Context, transferID string) error {
	args := m.Called(ctx, transferID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockAccountRepo     *MockAccountReader
	mockReserveRepo     *MockReserveRepository
	mockRecurringRepo   *MockRecurringRepository
	service             portssvc.TransactionSvc

	userID    string
	accountID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockReserveRepo = new(MockReserveRepository)
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.service = services.NewTransactionService(
		suite.mockTransactionRepo,
		suite.mockAccountRepo,
		suite.mockReserveRepo,
		suite.mockRecurringRepo,
	)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).
		Return(&domain.Account{AccountID: suite.accountID, UserID: suite.userID, AccountType: domain.Current}, nil).Maybe()
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:   suite.accountID,
		Amount:      decimal.NewFromInt(50),
		Type:        domain.Expense,
		Date:        "2026-03-10",
		Description: "Groceries",
	}

	var saved domain.Transaction
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Real, saved.Status)
	suite.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), saved.Date)
	// EffectiveDate falls back to Date when not supplied.
	suite.Equal(saved.Date, saved.EffectiveDate)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReserveOnDifferentAccount_Fails() {
	ctx := context.Background()
	reserveID := uuid.NewString()
	suite.mockReserveRepo.On("FindReserveByID", ctx, reserveID).
		Return(&domain.Reserve{ReserveID: reserveID, UserID: suite.userID, AccountID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		ReserveID: reserveID,
		Amount:    decimal.NewFromInt(10),
		Type:      domain.Expense,
		Date:      "2026-03-10",
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestValidateOccurrence_RequiresExactlyOneRule() {
	ctx := context.Background()

	_, err := suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{Date: "2026-03-10"})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{
		RecurringExpenseID:  uuid.NewString(),
		RecurringTransferID: uuid.NewString(),
		Date:                "2026-03-10",
	})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestValidateOccurrence_Expense() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	suite.mockRecurringRepo.On("FindRecurringExpenseByID", ctx, ruleID).
		Return(&domain.RecurringExpense{
			RecurringExpenseID: ruleID,
			UserID:             suite.userID,
			Name:               "Rent",
			Amount:             decimal.NewFromInt(800),
			Frequency:          domain.Monthly,
			AccountID:          suite.accountID,
		}, nil).Once()

	var saved domain.Transaction
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	txns, err := suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{
		RecurringExpenseID: ruleID,
		Date:               "2026-04-01",
	})

	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.Real, saved.Status)
	suite.Equal(domain.Expense, saved.Type)
	suite.Equal("Rent", saved.Description)
	suite.True(saved.Amount.Equal(decimal.NewFromInt(800)))
	// The rule reference plus date is what suppresses the generated occurrence.
	suite.Equal(ruleID, saved.RecurringExpenseID)
	suite.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), saved.Date)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestValidateOccurrence_Expense_AmountOverride() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	suite.mockRecurringRepo.On("FindRecurringExpenseByID", ctx, ruleID).
		Return(&domain.RecurringExpense{
			RecurringExpenseID: ruleID,
			UserID:             suite.userID,
			Name:               "Electricity",
			Amount:             decimal.NewFromInt(60),
			Frequency:          domain.Monthly,
			AccountID:          suite.accountID,
		}, nil).Once()

	var saved domain.Transaction
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	override := decimal.NewFromFloat(72.35)
	_, err := suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{
		RecurringExpenseID: ruleID,
		Date:               "2026-04-01",
		Amount:             &override,
	})

	suite.Require().NoError(err)
	suite.True(saved.Amount.Equal(override))
}

func (suite *TransactionServiceTestSuite) TestValidateOccurrence_Transfer_CreatesPairedLegs() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	reserveID := uuid.NewString()

	suite.mockRecurringRepo.On("FindRecurringTransferByID", ctx, ruleID).
		Return(&domain.RecurringTransfer{
			RecurringTransferID: ruleID,
			UserID:              suite.userID,
			Name:                "Vacation savings",
			Amount:              decimal.NewFromInt(150),
			Frequency:           domain.Monthly,
			Source:              domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: suite.accountID},
			Destination:         domain.TransferEndpoint{Kind: domain.EndpointReserve, ID: reserveID},
		}, nil).Once()
	suite.mockReserveRepo.On("FindReserveByID", ctx, reserveID).
		Return(&domain.Reserve{ReserveID: reserveID, UserID: suite.userID, AccountID: suite.accountID, Name: "Vacation"}, nil).Once()

	var legs []domain.Transaction
	suite.mockTransactionRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) { legs = args.Get(1).([]domain.Transaction) }).
		Return(nil).Once()

	txns, err := suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{
		RecurringTransferID: ruleID,
		Date:                "2026-05-01",
	})

	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	suite.Require().Len(legs, 2)

	out, in := legs[0], legs[1]
	suite.Equal(domain.Expense, out.Type)
	suite.Equal(domain.Income, in.Type)
	suite.NotEmpty(out.TransferID)
	suite.Equal(out.TransferID, in.TransferID)
	suite.Equal(ruleID, out.RecurringTransferID)
	suite.Equal(ruleID, in.RecurringTransferID)

	// The reserve endpoint resolves to its owning account plus the reserve tag.
	suite.Equal(suite.accountID, out.AccountID)
	suite.Empty(out.ReserveID)
	suite.Equal(suite.accountID, in.AccountID)
	suite.Equal(reserveID, in.ReserveID)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestValidateOccurrence_OtherUsersRule_NotFound() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	suite.mockRecurringRepo.On("FindRecurringExpenseByID", ctx, ruleID).
		Return(&domain.RecurringExpense{
			RecurringExpenseID: ruleID,
			UserID:             uuid.NewString(),
			Name:               "Rent",
			Amount:             decimal.NewFromInt(800),
		}, nil).Once()

	_, err := suite.service.ValidateOccurrence(ctx, suite.userID, dto.ValidateOccurrenceRequest{
		RecurringExpenseID: ruleID,
		Date:               "2026-04-01",
	})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_TransferLeg_DeletesBothLegs() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	transferID := uuid.NewString()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).
		Return(&domain.Transaction{
			TransactionID: transactionID,
			UserID:        suite.userID,
			AccountID:     suite.accountID,
			TransferID:    transferID,
		}, nil).Once()
	suite.mockTransactionRepo.On("DeleteTransactionsByTransferID", ctx, transferID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.Require().NoError(err)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Plain() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).
		Return(&domain.Transaction{
			TransactionID: transactionID,
			UserID:        suite.userID,
			AccountID:     suite.accountID,
		}, nil).Once()
	suite.mockTransactionRepo.On("DeleteTransaction", ctx, transactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.Require().NoError(err)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
