package service

import (
	"context"
	"errors"

	"reviewhub/internal/cache"
	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/pkg/apperror"
)

type ReviewService interface {
	ListForTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, principal *models.Principal, titleID int64, req *dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, principal *models.Principal, titleID, reviewID int64) error
	ListForAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Review, int64, error)
	SearchText(ctx context.Context, query string, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
	ratings *cache.RatingCache
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository, ratings *cache.RatingCache) ReviewService {
	return &reviewService{reviews: reviews, titles: titles, ratings: ratings}
}

func (s *reviewService) ListForTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, 0, mapNotFound(err)
	}
	return s.reviews.ListForTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return review, nil
}

func (s *reviewService) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.Get(ctx, reviewID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return review, nil
}

// Create adds a review, enforcing one review per author per title. The
// unique index backs up the pre-check under concurrent submissions.
func (s *reviewService) Create(ctx context.Context, principal *models.Principal, titleID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, mapNotFound(err)
	}

	exists, err := s.reviews.ExistsForAuthorAndTitle(ctx, principal.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewFieldError("title", "you have already reviewed this title")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: principal.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperror.NewFieldError("title", "you have already reviewed this title")
		}
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)
	return s.reviews.GetForTitle(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviews.GetForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !principal.CanModerate(review.AuthorID) {
		return nil, apperror.ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)
	return s.reviews.GetForTitle(ctx, titleID, reviewID)
}

func (s *reviewService) Delete(ctx context.Context, principal *models.Principal, titleID, reviewID int64) error {
	review, err := s.reviews.GetForTitle(ctx, titleID, reviewID)
	if err != nil {
		return mapNotFound(err)
	}
	if !principal.CanModerate(review.AuthorID) {
		return apperror.ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.ratings.Invalidate(ctx, titleID)
	return nil
}

func (s *reviewService) ListForAuthor(ctx context.Context, authorID string, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviews.ListForAuthor(ctx, authorID, page, pageSize)
}

func (s *reviewService) SearchText(ctx context.Context, query string, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviews.SearchText(ctx, query, page, pageSize)
}
