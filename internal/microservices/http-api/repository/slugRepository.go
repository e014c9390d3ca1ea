package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// SlugRepository stores categories and genres, which share a name/slug shape
// and are looked up by slug.
type SlugRepository[T models.Category | models.Genre] interface {
	List(ctx context.Context, search string, page Page) ([]T, int64, error)
	FindBySlug(ctx context.Context, slug string) (*T, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type (
	CategoryRepository = SlugRepository[models.Category]
	GenreRepository    = SlugRepository[models.Genre]
)

type slugRepository[T models.Category | models.Genre] struct {
	db   *gorm.DB
	kind string
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &slugRepository[models.Category]{db: db, kind: "category"}
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &slugRepository[models.Genre]{db: db, kind: "genre"}
}

func (r *slugRepository[T]) List(ctx context.Context, search string, page Page) ([]T, int64, error) {
	var list []T
	var total int64

	q := r.db.WithContext(ctx).Model(new(T))
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.kind, err)
	}
	if err := q.Order("id DESC").Scopes(paginate(page)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return list, total, nil
}

func (r *slugRepository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *slugRepository[T]) FindBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	var list []T
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find %s by slugs: %w", r.kind, err)
	}
	return list, nil
}

func (r *slugRepository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.kind, err)
	}
	return nil
}

func (r *slugRepository[T]) Update(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("update %s: %w", r.kind, err)
	}
	return nil
}

func (r *slugRepository[T]) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
