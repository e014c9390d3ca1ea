package dto

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination describes where a list page sits in the full result.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Page is the envelope of every list response.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage creates a paginated response
func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total / int64(pageSize))
		if total%int64(pageSize) != 0 {
			totalPages++
		}
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
