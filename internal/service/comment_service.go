package service

import (
	"context"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
	"reviewhub/pkg/apperror"
)

type CommentService interface {
	ListForReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64, req *dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

// resolveReview checks the title/review pair exists before any comment
// operation so a mismatched title in the path is a 404.
func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return review, nil
}

func (s *commentService) ListForReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListForReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetForReview(ctx, reviewID, commentID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, principal *models.Principal, titleID, reviewID int64, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: principal.ID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetForReview(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !principal.CanModerate(comment.AuthorID) {
		return nil, apperror.ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetForReview(ctx, reviewID, commentID)
}

func (s *commentService) Delete(ctx context.Context, principal *models.Principal, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !principal.CanModerate(comment.AuthorID) {
		return apperror.ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}
