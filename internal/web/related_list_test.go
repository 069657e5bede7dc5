package web

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"reviewhub/pkg/apperror"
)

func listContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

// fakeItems stands in for a fetched page of records.
func fakeItems(page, pageSize int, total int64) ([]int, int64) {
	start := (page - 1) * pageSize
	items := []int{}
	for i := start; i < start+pageSize && int64(i) < total; i++ {
		items = append(items, i)
	}
	return items, total
}

func newFakeList(pageSize int, total int64) relatedList {
	return relatedList{
		pageSize: pageSize,
		fetch: func(page, size int) (any, int64, error) {
			items, total := fakeItems(page, size, total)
			return items, total, nil
		},
	}
}

func TestRelatedList_Resolve(t *testing.T) {
	t.Run("FirstPageByDefault", func(t *testing.T) {
		list := newFakeList(5, 12)

		view, err := list.resolve(listContext(t, "/x"))

		assert.NoError(t, err)
		assert.Equal(t, 1, view.Page)
		assert.Equal(t, 3, view.TotalPages)
		assert.Equal(t, int64(12), view.Total)
		assert.True(t, view.HasNext)
		assert.False(t, view.HasPrev)
		assert.Len(t, view.Items.([]int), 5)
	})

	t.Run("NumericPage", func(t *testing.T) {
		list := newFakeList(5, 12)

		view, err := list.resolve(listContext(t, "/x?page=2"))

		assert.NoError(t, err)
		assert.Equal(t, 2, view.Page)
		assert.True(t, view.HasNext)
		assert.True(t, view.HasPrev)
	})

	t.Run("LastKeyword", func(t *testing.T) {
		list := newFakeList(5, 12)

		view, err := list.resolve(listContext(t, "/x?page=last"))

		assert.NoError(t, err)
		assert.Equal(t, 3, view.Page)
		assert.False(t, view.HasNext)
		assert.True(t, view.HasPrev)
		// last page holds the remainder
		assert.Len(t, view.Items.([]int), 2)
	})

	t.Run("LastOnEmptyCollection", func(t *testing.T) {
		list := newFakeList(5, 0)

		view, err := list.resolve(listContext(t, "/x?page=last"))

		assert.NoError(t, err)
		assert.Equal(t, 1, view.Page)
		assert.Equal(t, 1, view.TotalPages)
		assert.Empty(t, view.Items.([]int))
	})

	t.Run("PagePastEndIsNotFound", func(t *testing.T) {
		list := newFakeList(5, 12)

		_, err := list.resolve(listContext(t, "/x?page=4"))

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("ZeroPageIsNotFound", func(t *testing.T) {
		list := newFakeList(5, 12)

		_, err := list.resolve(listContext(t, "/x?page=0"))

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("GarbagePageIsNotFound", func(t *testing.T) {
		list := newFakeList(5, 12)

		_, err := list.resolve(listContext(t, "/x?page=banana"))

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("FirstPageOfEmptyCollectionIsOK", func(t *testing.T) {
		list := newFakeList(5, 0)

		view, err := list.resolve(listContext(t, "/x?page=1"))

		assert.NoError(t, err)
		assert.Equal(t, 1, view.Page)
		assert.False(t, view.HasNext)
	})
}
