package web

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/pkg/apperror"
)

const (
	titleReviewsPageSize = 5
	defaultWebPageSize   = 10
)

// relatedList fetches one page of objects hanging off a parent record.
// The page query parameter accepts numbers and the word "last"; a page
// past the end is a 404 like any other missing resource.
type relatedList struct {
	pageSize int
	fetch    func(page, pageSize int) (items any, total int64, err error)
}

// listView is the page payload handed to the view layer.
type listView struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Total      int64 `json:"total"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func (l relatedList) resolve(c *gin.Context) (*listView, error) {
	raw := c.DefaultQuery("page", "1")

	if raw == "last" {
		// fetch page 1 first to learn the total
		items, total, err := l.fetch(1, l.pageSize)
		if err != nil {
			return nil, err
		}
		last := dto.TotalPages(total, l.pageSize)
		if last > 1 {
			items, total, err = l.fetch(last, l.pageSize)
			if err != nil {
				return nil, err
			}
		}
		return l.view(items, last, total), nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return nil, apperror.ErrNotFound
	}

	items, total, err := l.fetch(page, l.pageSize)
	if err != nil {
		return nil, err
	}
	if page > dto.TotalPages(total, l.pageSize) {
		return nil, apperror.ErrNotFound
	}
	return l.view(items, page, total), nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ErrNotFound
	}
	return id, nil
}

func (l relatedList) view(items any, page int, total int64) *listView {
	totalPages := dto.TotalPages(total, l.pageSize)
	return &listView{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
