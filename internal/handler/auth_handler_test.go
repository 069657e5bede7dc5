package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/dto"
	"reviewhub/internal/handler"
	"reviewhub/internal/models"
	"reviewhub/pkg/apperror"
)

// --- MOCK SERVICE ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, username string) error {
	args := m.Called(ctx, email, username)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*models.Principal, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}

func (m *MockAuthService) RegisterWithPassword(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) LoginWithPassword(ctx context.Context, username, password string) (string, *models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, email, confirmationCode, newPassword string) error {
	args := m.Called(ctx, email, confirmationCode, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// --- SETUP ---

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService)

	rg := r.Group("/api/v1/auth")
	{
		rg.POST("/signup", h.SignUp)
		rg.POST("/token", h.IssueToken)
	}
	return r
}

// --- TESTS ---

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("SignUp", mock.Anything, "alice@example.com", "alice").Return(nil).Once()

		body, _ := json.Marshal(dto.SignUpRequest{Email: "alice@example.com", Username: "alice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "alice", response["username"])
		assert.Equal(t, "alice@example.com", response["email"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		body, _ := json.Marshal(dto.SignUpRequest{Username: "alice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]map[string][]string
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Contains(t, response["errors"], "email")
		mockService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TakenUsername", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("SignUp", mock.Anything, "new@example.com", "alice").
			Return(apperror.NewFieldError("username", "a user with that username already exists")).Once()

		body, _ := json.Marshal(dto.SignUpRequest{Email: "new@example.com", Username: "alice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_IssueToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice", "ABCDEF234567").Return("signed.jwt.token", nil).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice", ConfirmationCode: "ABCDEF234567"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "signed.jwt.token", response.Token)
	})

	t.Run("UnknownUsernameIs404", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "ghost", "ABCDEF234567").Return("", apperror.ErrNotFound).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "ghost", ConfirmationCode: "ABCDEF234567"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("WrongCodeIs400", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		mockService.On("IssueToken", mock.Anything, "alice", "WRONG").
			Return("", apperror.NewFieldError("confirmation_code", "invalid confirmation code")).Once()

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice", ConfirmationCode: "WRONG"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingCode", func(t *testing.T) {
		mockService := new(MockAuthService)
		r := setupAuthRouter(mockService)

		body, _ := json.Marshal(dto.TokenRequest{Username: "alice"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything, mock.Anything)
	})
}
