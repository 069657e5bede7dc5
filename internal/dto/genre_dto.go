package dto

import "reviewhub/internal/models"

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=50"`
}

func FromGenre(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}

func FromGenres(genres []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for i := range genres {
		out = append(out, FromGenre(&genres[i]))
	}
	return out
}

func (r *CreateGenreRequest) ToModel() *models.Genre {
	return &models.Genre{Name: r.Name, Slug: r.Slug}
}
