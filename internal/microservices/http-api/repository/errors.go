package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique constraint.
// gorm translates the error when TranslateError is on; the pgconn check
// covers sessions opened without it.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsNotFound reports whether err is gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Page holds offset pagination input shared by list queries.
type Page struct {
	Number int
	Size   int
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Size
}

// paginate applies limit/offset when a page is set.
func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Number < 1 || p.Size < 1 {
			return db
		}
		return db.Limit(p.Size).Offset(p.offset())
	}
}
