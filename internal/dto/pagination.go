package dto

// Paginated is the envelope for every paginated collection response.
type Paginated struct {
	Data       any   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated builds the envelope; TotalPages is at least 1 so an empty
// collection still has a valid first page.
func NewPaginated(data any, total int64, page, pageSize int) *Paginated {
	return &Paginated{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages computes the page count for a collection, never less than 1.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}
