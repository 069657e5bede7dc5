package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"
	"reviewhub/pkg/apperror"
	"reviewhub/pkg/binding"
	"reviewhub/pkg/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /api/v1/titles/:title_id/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := pageParams(c)
	reviews, total, err := h.reviewService.ListForTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromReviews(reviews), total, page, pageSize))
}

// Get handles GET /api/v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Create handles POST /api/v1/titles/:title_id/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
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
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), principal, titleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

// Update handles PATCH /api/v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), principal, titleID, reviewID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Delete handles DELETE /api/v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), principal, titleID, reviewID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, err error) {
	titleID, err = pathID(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathID(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
