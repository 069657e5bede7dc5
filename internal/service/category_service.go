package service

import (
	"context"
	"errors"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validators"
	"reviewhub/pkg/apperror"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categories.List(ctx, search, page, pageSize)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if err := validators.ValidateSlug(req.Slug); err != nil {
		return nil, apperror.NewFieldError("slug", err.Error())
	}
	if _, err := s.categories.GetBySlug(ctx, req.Slug); err == nil {
		return nil, apperror.NewFieldError("slug", "a category with that slug already exists")
	}

	category := req.ToModel()
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.categories.DeleteBySlug(ctx, slug)
	if errors.Is(err, repository.ErrCategoryInUse) {
		return apperror.NewFieldError("slug", "category still has titles attached")
	}
	return mapNotFound(err)
}
