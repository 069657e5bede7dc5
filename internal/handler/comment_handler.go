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

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles GET /api/v1/titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := pageParams(c)
	comments, total, err := h.commentService.ListForReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromComments(comments), total, page, pageSize))
}

// Get handles GET .../comments/:comment_id.
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Create handles POST .../comments.
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), principal, titleID, reviewID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// Update handles PATCH .../comments/:comment_id.
func (h *CommentHandler) Update(c *gin.Context) {
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
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), principal, titleID, reviewID, commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Delete handles DELETE .../comments/:comment_id.
func (h *CommentHandler) Delete(c *gin.Context) {
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
	c.Status(http.StatusNoContent)
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, err error) {
	titleID, reviewID, err = reviewPath(c)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = pathID(c, "comment_id")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
