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
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/pkg/apperror"
)

// --- MOCK SERVICE ---

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListForReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, titleID, reviewID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, titleID, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, principal, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, principal, titleID, reviewID, commentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64) error {
	args := m.Called(ctx, principal, titleID, reviewID, commentID)
	return args.Error(0)
}

// --- SETUP ---

func setupCommentRouter(mockService *MockCommentService, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(mockAuthMiddleware(role))
	}
	h := handler.NewCommentHandler(mockService)

	rg := r.Group("/api/v1/titles/:title_id/reviews/:review_id/comments")
	{
		rg.GET("", h.List)
		rg.GET("/:comment_id", h.Get)
		rg.POST("", middleware.RequireAuth(), h.Create)
		rg.PATCH("/:comment_id", middleware.RequireAuth(), h.Update)
		rg.DELETE("/:comment_id", middleware.RequireAuth(), h.Delete)
	}
	return r
}

// --- TESTS ---

func TestCommentHandler_List(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupCommentRouter(mockService, "")

	expected := []models.Comment{
		{ID: 1, ReviewID: 42, Text: "agreed", Author: models.User{Username: "alice"}},
		{ID: 2, ReviewID: 42, Text: "not really", Author: models.User{Username: "bob"}},
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("ListForReview", mock.Anything, int64(7), int64(42), 1, 10).
			Return(expected, int64(2), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/7/reviews/42/comments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)

		data := response["data"].([]interface{})
		assert.Len(t, data, 2)
		item1 := data[0].(map[string]interface{})
		assert.Equal(t, "agreed", item1["text"])
		assert.Equal(t, "alice", item1["author"])
	})

	t.Run("MismatchedReview", func(t *testing.T) {
		mockService.On("ListForReview", mock.Anything, int64(7), int64(999), 1, 10).
			Return([]models.Comment{}, int64(0), apperror.ErrNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/7/reviews/999/comments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GarbageReviewID", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/7/reviews/abc/comments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentHandler_Create(t *testing.T) {
	createReq := dto.CreateCommentRequest{Text: "well said"}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, models.RoleUser)

		created := &models.Comment{ID: 5, ReviewID: 42, Text: "well said", Author: models.User{Username: "testuser"}}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Principal) bool {
			return p.ID == "test-user-id"
		}), int64(7), int64(42), mock.MatchedBy(func(req *dto.CreateCommentRequest) bool {
			return req.Text == "well said"
		})).Return(created, nil).Once()

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews/42/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CommentResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, int64(5), response.ID)
		assert.Equal(t, "testuser", response.Author)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, "")

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews/42/comments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingText", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, models.RoleUser)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews/42/comments", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]map[string][]string
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Contains(t, response["errors"], "text")
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, models.RoleUser)

		mockService.On("Delete", mock.Anything, mock.Anything, int64(7), int64(42), int64(5)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/7/reviews/42/comments/5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupCommentRouter(mockService, models.RoleUser)

		mockService.On("Delete", mock.Anything, mock.Anything, int64(7), int64(42), int64(5)).
			Return(apperror.ErrForbidden).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/7/reviews/42/comments/5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
