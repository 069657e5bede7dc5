package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
	"reviewhub/pkg/binding"
	"reviewhub/pkg/response"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// List handles GET /api/v1/titles. Filters combine with AND: category
// and genre match by slug, name is a substring match, year is exact.
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.Error(c, binding.FormatValidationError(err))
			return
		}
		filter.Year = &year
	}

	page, pageSize := pageParams(c)
	titles, total, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromTitles(titles), total, page, pageSize))
}

// Get handles GET /api/v1/titles/:title_id.
func (h *TitleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// Create handles POST /api/v1/titles (admin only).
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromTitle(title))
}

// Update handles PATCH /api/v1/titles/:title_id (admin only).
func (h *TitleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// Delete handles DELETE /api/v1/titles/:title_id (admin only).
func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
