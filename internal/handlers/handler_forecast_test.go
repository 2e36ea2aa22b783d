package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmallet/cashplan/internal/core/domain"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/handlers"
	"github.com/jmallet/cashplan/internal/platform/config"
)

// --- Mock ForecastService ---
type MockForecastService struct {
	mock.Mock
}

func (m *MockForecastService) BuildForecast(ctx context.Context, userID string, today time.Time) (*domain.Forecast, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Forecast), args.Error(1)
}

func (m *MockForecastService) MergedTransactions(ctx context.Context, userID string, today time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ForecastSvc = (*MockForecastService)(nil)

// --- Test Suite ---
type ForecastHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockForecastService *MockForecastService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ForecastHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cashplan-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ForecastHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockForecastService = new(MockForecastService)

	cfg := &config.Config{
		JWTSecret:              suite.jwtSecret,
		AuthRateLimitPerMinute: 10,
		IsProduction:           true, // skip swagger wiring in tests
	}
	services := &portssvc.ServiceContainer{Forecast: suite.mockForecastService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// --- Test Cases ---

func (suite *ForecastHandlerTestSuite) TestGetForecast_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expected := &domain.Forecast{
		GeneratedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Snapshots: []domain.MonthlySnapshot{
			{
				Month:           month,
				AccountBalances: map[string]decimal.Decimal{accountID: decimal.NewFromInt(900)},
				ReserveBalances: map[string]decimal.Decimal{},
				TotalBalance:    decimal.NewFromInt(900),
			},
		},
	}

	suite.mockForecastService.On("BuildForecast",
		mock.Anything,
		userID,
		mock.AnythingOfType("time.Time"),
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ForecastResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Snapshots, 1)
	suite.Equal("2026-03", resp.Snapshots[0].Month)
	suite.True(resp.Snapshots[0].TotalBalance.Equal(decimal.NewFromInt(900)))
	suite.True(resp.Snapshots[0].AccountBalances[accountID].Equal(decimal.NewFromInt(900)))

	suite.mockForecastService.AssertExpectations(suite.T())
}

func (suite *ForecastHandlerTestSuite) TestGetForecast_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/forecast", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockForecastService.AssertNotCalled(suite.T(), "BuildForecast", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ForecastHandlerTestSuite) TestForecastTransactions_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	merged := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			AccountID:     accountID,
			Amount:        decimal.NewFromInt(100),
			Type:          domain.Expense,
			Status:        domain.Potential,
			Date:          time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			EffectiveDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			Description:   "Rent",
		},
		{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			AccountID:     accountID,
			Amount:        decimal.NewFromInt(50),
			Type:          domain.Income,
			Status:        domain.Real,
			Date:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EffectiveDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockForecastService.On("MergedTransactions",
		mock.Anything,
		userID,
		mock.AnythingOfType("time.Time"),
	).Return(merged, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/forecast/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ForecastTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 2)
	suite.Equal(string(domain.Potential), string(resp.Transactions[0].Status))
	suite.Equal("2026-04-10", resp.Transactions[0].Date)
	suite.Equal(string(domain.Real), string(resp.Transactions[1].Status))

	suite.mockForecastService.AssertExpectations(suite.T())
}

func TestForecastHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ForecastHandlerTestSuite))
}
