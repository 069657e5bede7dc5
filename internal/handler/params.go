package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/pkg/apperror"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageParams reads page/page_size query parameters with sane clamps.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// pathID parses a numeric path parameter, reporting a 404 for garbage
// so bad IDs and missing rows look the same to clients.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ErrNotFound
	}
	return id, nil
}
