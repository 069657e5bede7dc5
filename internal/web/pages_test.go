package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/pkg/apperror"
)

// --- MOCK SERVICES ---

type mockTitleService struct {
	mock.Mock
}

func (m *mockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *mockTitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *mockTitleService) Create(ctx context.Context, req *dto.CreateTitleRequest) (*models.Title, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *mockTitleService) Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*models.Title, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *mockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTitleService) ListForCategory(ctx context.Context, slug string, page, pageSize int) (*models.Category, []models.Title, int64, error) {
	args := m.Called(ctx, slug, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, 0, args.Error(3)
	}
	return args.Get(0).(*models.Category), args.Get(1).([]models.Title), args.Get(2).(int64), args.Error(3)
}

func (m *mockTitleService) ListForGenre(ctx context.Context, slug string, page, pageSize int) (*models.Genre, []models.Title, int64, error) {
	args := m.Called(ctx, slug, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, 0, args.Error(3)
	}
	return args.Get(0).(*models.Genre), args.Get(1).([]models.Title), args.Get(2).(int64), args.Error(3)
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *mockCategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type mockGenreService struct {
	mock.Mock
}

func (m *mockGenreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *mockGenreService) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *mockGenreService) Create(ctx context.Context, req *dto.CreateGenreRequest) (*models.Genre, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *mockGenreService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// --- TESTS ---

func TestPageHandler_CategoryTitles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		titles := new(mockTitleService)
		categories := new(mockCategoryService)
		h := NewPageHandler(titles, nil, nil, nil, categories, nil)

		category := &models.Category{ID: 3, Name: "Films", Slug: "films"}
		categories.On("GetBySlug", mock.Anything, "films").Return(category, nil).Once()
		titles.On("ListForCategory", mock.Anything, "films", 1, defaultWebPageSize).
			Return(category, []models.Title{{ID: 1, Name: "Alien", Year: 1979}}, int64(1), nil).Once()

		r := gin.New()
		r.GET("/categories/:slug", h.CategoryTitles)
		req := httptest.NewRequest(http.MethodGet, "/categories/films", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]json.RawMessage
		json.Unmarshal(w.Body.Bytes(), &body)
		var got dto.CategoryResponse
		json.Unmarshal(body["category"], &got)
		assert.Equal(t, "films", got.Slug)

		// the parent comes from one slug lookup, the list from one page query
		titles.AssertNumberOfCalls(t, "ListForCategory", 1)
		categories.AssertExpectations(t)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		titles := new(mockTitleService)
		categories := new(mockCategoryService)
		h := NewPageHandler(titles, nil, nil, nil, categories, nil)

		categories.On("GetBySlug", mock.Anything, "ghost").Return(nil, apperror.ErrNotFound).Once()

		r := gin.New()
		r.GET("/categories/:slug", h.CategoryTitles)
		req := httptest.NewRequest(http.MethodGet, "/categories/ghost", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPageHandler_GenreTitles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		titles := new(mockTitleService)
		genres := new(mockGenreService)
		h := NewPageHandler(titles, nil, nil, nil, nil, genres)

		genre := &models.Genre{ID: 2, Name: "Horror", Slug: "horror"}
		genres.On("GetBySlug", mock.Anything, "horror").Return(genre, nil).Once()
		titles.On("ListForGenre", mock.Anything, "horror", 1, defaultWebPageSize).
			Return(genre, []models.Title{{ID: 1, Name: "Alien", Year: 1979}}, int64(1), nil).Once()

		r := gin.New()
		r.GET("/genres/:slug", h.GenreTitles)
		req := httptest.NewRequest(http.MethodGet, "/genres/horror", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		titles.AssertNumberOfCalls(t, "ListForGenre", 1)
		genres.AssertExpectations(t)
	})
}
