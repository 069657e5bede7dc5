package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reviewhub/internal/models"
)

// ErrDuplicateReview surfaces the (author, title) uniqueness constraint. The
// service layer pre-checks for duplicates, but the database index is the
// authority under concurrent submissions, so the repository maps the
// constraint violation to the same error.
var ErrDuplicateReview = errors.New("review by this author already exists for the title")

const uniqueViolation = "23505"

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Review, error)
	GetForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ExistsForAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error)
	ListForTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	ListForAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Review, int64, error)
	SearchText(ctx context.Context, query string, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Model(&models.Review{ID: review.ID}).
		Select("text", "score").
		Updates(map[string]any{"text": review.Text, "score": review.Score}).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Author").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsForAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListForTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	return r.listWhere(ctx, "title_id = ?", []any{titleID}, page, pageSize)
}

func (r *reviewRepository) ListForAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Review, int64, error) {
	return r.listWhere(ctx, "author_id = ?", []any{authorID}, page, pageSize)
}

func (r *reviewRepository) SearchText(ctx context.Context, query string, page, pageSize int) ([]models.Review, int64, error) {
	return r.listWhere(ctx, "text ILIKE ?", []any{likePattern(query)}, page, pageSize)
}

func (r *reviewRepository) listWhere(ctx context.Context, cond string, args []any, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Review{}).Where(cond, args...)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Author").
		Order("pub_date DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
