package dto

import "reviewhub/internal/models"

// TitleResponse is the read shape: category and genres come back as
// nested objects, rating is null until the title has reviews.
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description string           `json:"description"`
	Genres      []GenreResponse  `json:"genre"`
	Category    CategoryResponse `json:"category"`
}

// CreateTitleRequest is the write shape: category and genres are
// referenced by slug, never nested.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category" binding:"required"`
}

// UpdateTitleRequest: partial update, nil fields stay untouched. A
// non-nil empty Genre slice clears the genre set.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

func FromTitle(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:       t.ID,
		Name:     t.Name,
		Year:     t.Year,
		Rating:   t.Rating,
		Genres:   FromGenres(t.Genres),
		Category: FromCategory(&t.Category),
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	return resp
}

func FromTitles(titles []models.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(titles))
	for i := range titles {
		out = append(out, FromTitle(&titles[i]))
	}
	return out
}
