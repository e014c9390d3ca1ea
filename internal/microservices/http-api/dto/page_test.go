package dto

import (
	"encoding/json"
	"testing"

	"reviewhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_TotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"empty", 0, 20, 0},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"zero page size", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.want, p.Pagination.TotalPages)
			assert.NotNil(t, p.Data)
		})
	}
}

func TestFromTitle_NullRatingAndCategory(t *testing.T) {
	title := &models.Title{ID: 3, Name: "Dune", Year: 1965}

	body, err := json.Marshal(FromTitle(title))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Nil(t, got["rating"])
	assert.Nil(t, got["category"])
	assert.Equal(t, []any{}, got["genre"])
}

func TestFromReview_AuthorIsUsername(t *testing.T) {
	r := &models.Review{ID: 1, Text: "ok", Score: 7, Author: models.User{ID: 9, Username: "bob"}}
	assert.Equal(t, "bob", FromReview(r).Author)
}
