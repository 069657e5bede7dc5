package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
	"reviewhub/pkg/response"
)

// PageHandler serves the browsing surface. Each endpoint returns the
// view model a template layer renders: the page's primary object plus
// one paginated related list.
type PageHandler struct {
	titleService    service.TitleService
	reviewService   service.ReviewService
	commentService  service.CommentService
	userService     service.UserService
	categoryService service.CategoryService
	genreService    service.GenreService
}

func NewPageHandler(
	titleService service.TitleService,
	reviewService service.ReviewService,
	commentService service.CommentService,
	userService service.UserService,
	categoryService service.CategoryService,
	genreService service.GenreService,
) *PageHandler {
	return &PageHandler{
		titleService:    titleService,
		reviewService:   reviewService,
		commentService:  commentService,
		userService:     userService,
		categoryService: categoryService,
		genreService:    genreService,
	}
}

// Home handles GET /. Newest titles, ten per page.
func (h *PageHandler) Home(c *gin.Context) {
	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			titles, total, err := h.titleService.List(c.Request.Context(), repository.TitleFilter{}, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromTitles(titles), total, nil
		},
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"titles": view})
}

// TitleDetail handles GET /titles/:title_id. The title plus its
// reviews, five per page.
func (h *PageHandler) TitleDetail(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), titleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := relatedList{
		pageSize: titleReviewsPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			reviews, total, err := h.reviewService.ListForTitle(c.Request.Context(), titleID, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromReviews(reviews), total, nil
		},
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   dto.FromTitle(title),
		"reviews": view,
	})
}

// ReviewDetail handles GET /reviews/:review_id. The review plus its
// comments, ten per page.
func (h *PageHandler) ReviewDetail(c *gin.Context) {
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			comments, total, err := h.commentService.ListForReview(c.Request.Context(), review.TitleID, reviewID, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromComments(comments), total, nil
		},
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review":   dto.FromReview(review),
		"comments": view,
	})
}

// CategoryTitles handles GET /categories/:slug.
func (h *PageHandler) CategoryTitles(c *gin.Context) {
	slug := c.Param("slug")
	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			_, titles, total, err := h.titleService.ListForCategory(c.Request.Context(), slug, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromTitles(titles), total, nil
		},
	}

	category, err := h.categoryService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": dto.FromCategory(category),
		"titles":   view,
	})
}

// GenreTitles handles GET /genres/:slug.
func (h *PageHandler) GenreTitles(c *gin.Context) {
	slug := c.Param("slug")
	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			_, titles, total, err := h.titleService.ListForGenre(c.Request.Context(), slug, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromTitles(titles), total, nil
		},
	}

	genre, err := h.genreService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"genre":  dto.FromGenre(genre),
		"titles": view,
	})
}

// Profile handles GET /profiles/:username. The user plus their reviews.
func (h *PageHandler) Profile(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			reviews, total, err := h.reviewService.ListForAuthor(c.Request.Context(), user.ID, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromReviews(reviews), total, nil
		},
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.FromUser(user),
		"reviews": view,
	})
}

// Search handles GET /search?q=. Substring search over review text.
func (h *PageHandler) Search(c *gin.Context) {
	query := c.Query("q")

	list := relatedList{
		pageSize: defaultWebPageSize,
		fetch: func(page, pageSize int) (any, int64, error) {
			if query == "" {
				return []dto.ReviewResponse{}, 0, nil
			}
			reviews, total, err := h.reviewService.SearchText(c.Request.Context(), query, page, pageSize)
			if err != nil {
				return nil, 0, err
			}
			return dto.FromReviews(reviews), total, nil
		},
	}
	view, err := list.resolve(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": view,
	})
}
