package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/cache"
	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/internal/validators"
	"reviewhub/pkg/apperror"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req *dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
	ListForCategory(ctx context.Context, slug string, page, pageSize int) (*models.Category, []models.Title, int64, error)
	ListForGenre(ctx context.Context, slug string, page, pageSize int) (*models.Genre, []models.Title, int64, error)
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	ratings    *cache.RatingCache
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	ratings *cache.RatingCache,
) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		ratings:    ratings,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titles.List(ctx, filter, page, pageSize)
}

// Get loads a title and fills in its rating, preferring the cache over
// re-aggregating review scores.
func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if rating, ok := s.ratings.Get(ctx, id); ok {
		title.Rating = rating
		return title, nil
	}

	rating, err := s.titles.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = rating
	s.ratings.Set(ctx, id, rating)
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req *dto.CreateTitleRequest) (*models.Title, error) {
	if err := validators.ValidateYear(req.Year); err != nil {
		return nil, apperror.NewFieldError("year", err.Error())
	}

	category, genres, err := s.resolveRefs(ctx, &req.Category, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  category.ID,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	if len(genres) > 0 {
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req *dto.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Year != nil {
		if err := validators.ValidateYear(*req.Year); err != nil {
			return nil, apperror.NewFieldError("year", err.Error())
		}
		title.Year = *req.Year
	}
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = req.Description
	}

	category, genres, err := s.resolveRefs(ctx, req.Category, req.Genre)
	if err != nil {
		return nil, err
	}
	if category != nil {
		title.CategoryID = category.ID
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}
	if req.Genre != nil {
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.titles.GetByID(ctx, id); err != nil {
		return mapNotFound(err)
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		return err
	}
	s.ratings.Invalidate(ctx, id)
	return nil
}

func (s *titleService) ListForCategory(ctx context.Context, slug string, page, pageSize int) (*models.Category, []models.Title, int64, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, 0, mapNotFound(err)
	}
	titles, total, err := s.titles.ListForCategory(ctx, category.ID, page, pageSize)
	if err != nil {
		return nil, nil, 0, err
	}
	return category, titles, total, nil
}

func (s *titleService) ListForGenre(ctx context.Context, slug string, page, pageSize int) (*models.Genre, []models.Title, int64, error) {
	genre, err := s.genres.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, 0, mapNotFound(err)
	}
	titles, total, err := s.titles.ListForGenre(ctx, genre.ID, page, pageSize)
	if err != nil {
		return nil, nil, 0, err
	}
	return genre, titles, total, nil
}

// resolveRefs turns slug references into loaded rows, reporting unknown
// slugs per field. A nil categorySlug or genre slice skips that side.
func (s *titleService) resolveRefs(ctx context.Context, categorySlug *string, genreSlugs []string) (*models.Category, []models.Genre, error) {
	var category *models.Category
	if categorySlug != nil {
		found, err := s.categories.GetBySlug(ctx, *categorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperror.NewFieldError("category", "unknown category slug")
			}
			return nil, nil, err
		}
		category = found
	}

	var genres []models.Genre
	if len(genreSlugs) > 0 {
		found, err := s.genres.GetBySlugs(ctx, genreSlugs)
		if err != nil {
			return nil, nil, err
		}
		if len(found) != len(genreSlugs) {
			known := make(map[string]bool, len(found))
			for _, g := range found {
				known[g.Slug] = true
			}
			fieldErrs := apperror.FieldErrors{}
			for _, slug := range genreSlugs {
				if !known[slug] {
					fieldErrs.Add("genre", "unknown genre slug: "+slug)
				}
			}
			return nil, nil, fieldErrs
		}
		genres = found
	}
	return category, genres, nil
}
