package dto

import (
	"time"

	"reviewhub/internal/microservices/http-api/models"
)

// ReviewResponse renders the author by username.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// CreateReviewRequest for posting a review on a title
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewRequest for partially updating a review
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func FromReview(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func FromReviews(list []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for i := range list {
		out = append(out, FromReview(&list[i]))
	}
	return out
}
