package dto

import "reviewhub/internal/microservices/http-api/models"

// TitleResponse is the read shape of a title.
type TitleResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Year        int            `json:"year"`
	Rating      *float64       `json:"rating"`
	Description *string        `json:"description"`
	Category    *SlugResponse  `json:"category"`
	Genre       []SlugResponse `json:"genre"`
}

// CreateTitleRequest takes the category and genres by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleRequest: nil fields are kept. An empty category slug clears the
// category and an empty genre list clears the genres.
type UpdateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

func FromTitle(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       FromGenres(t.Genres),
	}
	if t.Category != nil {
		c := FromCategory(t.Category)
		resp.Category = &c
	}
	return resp
}

func FromTitles(list []models.Title) []TitleResponse {
	out := make([]TitleResponse, 0, len(list))
	for i := range list {
		out = append(out, FromTitle(&list[i]))
	}
	return out
}
