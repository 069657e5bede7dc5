package dto

import "reviewhub/internal/models"

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=50"`
}

func FromCategory(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func FromCategories(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, FromCategory(&categories[i]))
	}
	return out
}

func (r *CreateCategoryRequest) ToModel() *models.Category {
	return &models.Category{Name: r.Name, Slug: r.Slug}
}
