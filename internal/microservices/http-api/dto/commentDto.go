package dto

import (
	"time"

	"reviewhub/internal/microservices/http-api/models"
)

// CreateCommentRequest for commenting on a review
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest for editing a comment
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

// CommentResponse renders the author by username.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// FromComment converts a Comment model to CommentResponse DTO
func FromComment(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}

func FromComments(list []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromComment(&list[i]))
	}
	return out
}
