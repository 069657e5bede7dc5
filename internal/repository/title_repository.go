package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/models"
)

// TitleFilter holds the combinable listing filters; zero values mean
// "no constraint". Filters are ANDed together.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	AverageRating(ctx context.Context, titleID int64) (*float64, error)
	ListForCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Title, int64, error)
	ListForGenre(ctx context.Context, genreID int64, page, pageSize int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) filtered(ctx context.Context, f TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", f.GenreSlug)
	}
	if f.Name != "" {
		q = q.Where("titles.name ILIKE ?", likePattern(f.Name))
	}
	if f.Year != nil {
		q = q.Where("titles.year = ?", *f.Year)
	}
	return q
}

// List returns a page of titles with the rating aggregate computed in the
// query itself (LEFT JOIN + AVG), so it reflects committed reviews at query
// time.
func (r *titleRepository) List(ctx context.Context, f TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := r.filtered(ctx, f).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.filtered(ctx, f).
		Select("titles.*, AVG(reviews.score) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id").
		Order("titles.year DESC, titles.id").
		Limit(pageSize).
		Offset(offset).
		Preload("Category").
		Preload("Genres").
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Save would try to upsert associations; restrict to column updates
	err := r.db.WithContext(ctx).Model(&models.Title{ID: title.ID}).
		Select("name", "year", "category_id", "description").
		Updates(map[string]any{
			"name":        title.Name,
			"year":        title.Year,
			"category_id": title.CategoryID,
			"description": title.Description,
		}).Error
	if err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(&genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageRating computes the mean review score for one title; nil when the
// title has no reviews.
func (r *titleRepository) AverageRating(ctx context.Context, titleID int64) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *titleRepository) ListForCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Title, int64, error) {
	return r.listWhere(ctx, "titles.category_id = ?", []any{categoryID}, nil, page, pageSize)
}

func (r *titleRepository) ListForGenre(ctx context.Context, genreID int64, page, pageSize int) ([]models.Title, int64, error) {
	joins := []string{"JOIN genre_titles ON genre_titles.title_id = titles.id"}
	return r.listWhere(ctx, "genre_titles.genre_id = ?", []any{genreID}, joins, page, pageSize)
}

func (r *titleRepository) listWhere(ctx context.Context, cond string, args []any, joins []string, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Title{})
		for _, j := range joins {
			q = q.Joins(j)
		}
		return q.Where(cond, args...)
	}

	if err := base().Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := base().
		Select("titles.*, AVG(reviews.score) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id").
		Order("titles.year DESC, titles.id").
		Limit(pageSize).
		Offset(offset).
		Preload("Category").
		Preload("Genres").
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}
