package service

import (
	"context"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validators"
	"reviewhub/pkg/apperror"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	Create(ctx context.Context, req *dto.CreateGenreRequest) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
}

func NewGenreService(genres repository.GenreRepository) GenreService {
	return &genreService{genres: genres}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genres.List(ctx, search, page, pageSize)
}

func (s *genreService) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	genre, err := s.genres.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return genre, nil
}

func (s *genreService) Create(ctx context.Context, req *dto.CreateGenreRequest) (*models.Genre, error) {
	if err := validators.ValidateSlug(req.Slug); err != nil {
		return nil, apperror.NewFieldError("slug", err.Error())
	}
	if _, err := s.genres.GetBySlug(ctx, req.Slug); err == nil {
		return nil, apperror.NewFieldError("slug", "a genre with that slug already exists")
	}

	genre := req.ToModel()
	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if _, err := s.genres.GetBySlug(ctx, slug); err != nil {
		return mapNotFound(err)
	}
	return s.genres.DeleteBySlug(ctx, slug)
}
