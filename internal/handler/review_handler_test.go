package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/dto"
	"reviewhub/internal/handler"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/pkg/apperror"
)

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListForTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, principal *models.Principal, titleID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, principal, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, principal, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, principal *models.Principal, titleID, reviewID int64) error {
	args := m.Called(ctx, principal, titleID, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) ListForAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, authorID, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) SearchText(ctx context.Context, query string, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

// --- SETUP ---

func setupReviewRouter(mockService *MockReviewService, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(mockAuthMiddleware(role))
	}
	h := handler.NewReviewHandler(mockService)

	rg := r.Group("/api/v1/titles/:title_id/reviews")
	{
		rg.GET("", h.List)
		rg.GET("/:review_id", h.Get)
		rg.POST("", middleware.RequireAuth(), h.Create)
		rg.PATCH("/:review_id", middleware.RequireAuth(), h.Update)
		rg.DELETE("/:review_id", middleware.RequireAuth(), h.Delete)
	}
	return r
}

// --- TESTS ---

func TestReviewHandler_List(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, "")

	expected := []models.Review{
		{ID: 1, TitleID: 7, Text: "great", Score: 10, Author: models.User{Username: "alice"}, PubDate: time.Now()},
		{ID: 2, TitleID: 7, Text: "meh", Score: 4, Author: models.User{Username: "bob"}},
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("ListForTitle", mock.Anything, int64(7), 1, 10).Return(expected, int64(2), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/7/reviews", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)

		data := response["data"].([]interface{})
		assert.Len(t, data, 2)
		item1 := data[0].(map[string]interface{})
		assert.Equal(t, "alice", item1["author"])
		assert.Equal(t, float64(10), item1["score"])
	})

	t.Run("UnknownTitle", func(t *testing.T) {
		mockService.On("ListForTitle", mock.Anything, int64(999), 1, 10).
			Return([]models.Review{}, int64(0), apperror.ErrNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/999/reviews", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewHandler_Create(t *testing.T) {
	score := 8
	createReq := dto.CreateReviewRequest{Text: "solid", Score: &score}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		created := &models.Review{ID: 42, TitleID: 7, Text: "solid", Score: 8, Author: models.User{Username: "testuser"}}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Principal) bool {
			return p.ID == "test-user-id"
		}), int64(7), mock.MatchedBy(func(req *dto.CreateReviewRequest) bool {
			return req.Text == "solid" && *req.Score == 8
		})).Return(created, nil).Once()

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ReviewResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, int64(42), response.ID)
		assert.Equal(t, "testuser", response.Author)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "")

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ScoreZeroAccepted", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		zero := 0
		created := &models.Review{ID: 43, TitleID: 7, Text: "awful", Score: 0}
		mockService.On("Create", mock.Anything, mock.Anything, int64(7), mock.MatchedBy(func(req *dto.CreateReviewRequest) bool {
			return *req.Score == 0
		})).Return(created, nil).Once()

		body, _ := json.Marshal(dto.CreateReviewRequest{Text: "awful", Score: &zero})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		eleven := 11
		body, _ := json.Marshal(dto.CreateReviewRequest{Text: "too good", Score: &eleven})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateReviewIsBadRequest", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		mockService.On("Create", mock.Anything, mock.Anything, int64(7), mock.Anything).
			Return(nil, apperror.NewFieldError("title", "you have already reviewed this title")).Once()

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewHandler_Update(t *testing.T) {
	t.Run("ForbiddenForStranger", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		mockService.On("Update", mock.Anything, mock.Anything, int64(7), int64(42), mock.Anything).
			Return(nil, apperror.ErrForbidden).Once()

		body, _ := json.Marshal(dto.UpdateReviewRequest{Text: strPtr("hijack")})
		req, _ := http.NewRequest(http.MethodPatch, "/api/v1/titles/7/reviews/42", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReviewHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		mockService.On("Delete", mock.Anything, mock.Anything, int64(7), int64(42)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/7/reviews/42", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})
}
