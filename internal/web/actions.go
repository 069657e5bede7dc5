package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"
	"reviewhub/pkg/apperror"
	"reviewhub/pkg/binding"
	"reviewhub/pkg/response"
)

// ActionHandler covers the form submissions of the browsing surface.
// Successful writes answer with the location the page should move to.
type ActionHandler struct {
	reviewService  service.ReviewService
	commentService service.CommentService
}

func NewActionHandler(reviewService service.ReviewService, commentService service.CommentService) *ActionHandler {
	return &ActionHandler{reviewService: reviewService, commentService: commentService}
}

func titleURL(titleID int64) string {
	return fmt.Sprintf("/titles/%d", titleID)
}

func reviewURL(reviewID int64) string {
	return fmt.Sprintf("/reviews/%d", reviewID)
}

// CreateReview handles POST /titles/:title_id/reviews.
func (h *ActionHandler) CreateReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), principal, titleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": reviewURL(review.ID)})
}

// UpdateReview handles POST /titles/:title_id/reviews/:review_id/edit.
func (h *ActionHandler) UpdateReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	if _, err := h.reviewService.Update(c.Request.Context(), principal, titleID, reviewID, &req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": reviewURL(reviewID)})
}

// DeleteReview handles POST /titles/:title_id/reviews/:review_id/delete.
func (h *ActionHandler) DeleteReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), principal, titleID, reviewID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": titleURL(titleID)})
}

// CreateComment handles POST /titles/:title_id/reviews/:review_id/comments.
func (h *ActionHandler) CreateComment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	if _, err := h.commentService.Create(c.Request.Context(), principal, titleID, reviewID, &req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": reviewURL(reviewID) + "?page=last"})
}

// UpdateComment handles POST .../comments/:comment_id/edit.
func (h *ActionHandler) UpdateComment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	if _, err := h.commentService.Update(c.Request.Context(), principal, titleID, reviewID, commentID, &req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": reviewURL(reviewID)})
}

// DeleteComment handles POST .../comments/:comment_id/delete.
func (h *ActionHandler) DeleteComment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), principal, titleID, reviewID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": reviewURL(reviewID)})
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, err error) {
	titleID, err = pathID(c, "title_id")
	if err != nil {
		return 0, 0, 0, err
	}
	reviewID, err = pathID(c, "review_id")
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = pathID(c, "comment_id")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
