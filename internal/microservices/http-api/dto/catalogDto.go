package dto

import "reviewhub/internal/microservices/http-api/models"

// SlugResponse is how categories and genres are rendered.
type SlugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateSlugRequest for creating a category or genre
type CreateSlugRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateSlugRequest for partially updating a category or genre
type UpdateSlugRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func FromCategory(c *models.Category) SlugResponse {
	return SlugResponse{Name: c.Name, Slug: c.Slug}
}

func FromCategories(list []models.Category) []SlugResponse {
	out := make([]SlugResponse, 0, len(list))
	for i := range list {
		out = append(out, FromCategory(&list[i]))
	}
	return out
}

func FromGenre(g *models.Genre) SlugResponse {
	return SlugResponse{Name: g.Name, Slug: g.Slug}
}

func FromGenres(list []models.Genre) []SlugResponse {
	out := make([]SlugResponse, 0, len(list))
	for i := range list {
		out = append(out, FromGenre(&list[i]))
	}
	return out
}
