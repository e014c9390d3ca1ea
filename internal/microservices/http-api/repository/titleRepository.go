package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingSelect computes the aggregate rating on every read. AVG over zero
// rows is NULL, which leaves Title.Rating nil.
const ratingSelect = "titles.*, (SELECT AVG(reviews.score)::float8 FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows title listings; zero fields are ignored.
type TitleFilter struct {
	Name     string
	Year     *int
	Category string // category slug
	Genre    string // genre slug
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Title, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, title *models.Title, genreIDs []uint) error
	// Update saves the scalar fields; genreIDs replaces the genre set unless nil.
	Update(ctx context.Context, title *models.Title, genreIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func applyTitleFilter(f TitleFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			db = db.Where("titles.name = ?", f.Name)
		}
		if f.Year != nil {
			db = db.Where("titles.year = ?", *f.Year)
		}
		if f.Category != "" {
			db = db.Where("titles.category_id IN (SELECT id FROM categories WHERE slug = ?)", f.Category)
		}
		if f.Genre != "" {
			db = db.Where(`titles.id IN (
				SELECT title_genres.title_id FROM title_genres
				JOIN genres ON genres.id = title_genres.genre_id
				WHERE genres.slug = ?)`, f.Genre)
		}
		return db
	}
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Title{}).
		Scopes(applyTitleFilter(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Title{}).
		Select(ratingSelect).
		Scopes(applyTitleFilter(filter), paginate(page)).
		Preload("Category").
		Preload("Genres").
		Order("titles.id").
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).Model(&models.Title{}).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genreIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(title).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		return replaceGenres(tx, title.ID, genreIDs)
	})
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, genreIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(title).Error; err != nil {
			return fmt.Errorf("update title: %w", err)
		}
		if genreIDs == nil {
			return nil
		}
		return replaceGenres(tx, title.ID, genreIDs)
	})
}

func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// replaceGenres rewrites the title_genres rows for titleID inside tx.
func replaceGenres(tx *gorm.DB, titleID uint, genreIDs []uint) error {
	if err := tx.Where("title_id = ?", titleID).Delete(&models.TitleGenre{}).Error; err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]models.TitleGenre, 0, len(genreIDs))
	seen := make(map[uint]bool, len(genreIDs))
	for _, id := range genreIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, models.TitleGenre{TitleID: titleID, GenreID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}
