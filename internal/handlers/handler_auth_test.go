package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/handlers"
	"github.com/jmallet/cashplan/internal/platform/config"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvc = (*MockUserService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *MockUserService
	jwtSecret       string
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:              suite.jwtSecret,
		JWTExpiryDuration:      time.Hour,
		JWTIssuer:              "cashplan-test",
		AuthRateLimitPerMinute: 100,
		IsProduction:           true, // skip swagger wiring in tests
	}
	services := &portssvc.ServiceContainer{User: suite.mockUserService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	userID := uuid.NewString()
	suite.mockUserService.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(&domain.User{UserID: userID, Email: "jane@example.com", Name: "Jane"}, nil).Once()

	body, _ := json.Marshal(dto.RegisterRequest{Email: "jane@example.com", Name: "Jane", Password: "s3cret-enough"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.UserID)
	suite.Equal("jane@example.com", resp.Email)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_TokenSubjectIsUserID() {
	userID := uuid.NewString()
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "jane@example.com", "s3cret-enough").
		Return(&domain.User{UserID: userID, Email: "jane@example.com", Name: "Jane"}, nil).Once()

	body, _ := json.Marshal(dto.LoginRequest{Email: "jane@example.com", Password: "s3cret-enough"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.User.UserID)

	// The token must be signed for the authenticated user.
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(suite.jwtSecret), nil
	})
	suite.Require().NoError(err)
	suite.Equal(userID, claims.Subject)
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "jane@example.com", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	body, _ := json.Marshal(dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
