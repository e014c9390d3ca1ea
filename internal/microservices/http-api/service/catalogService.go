package service

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
)

// SlugService manages categories and genres, addressed by slug.
type SlugService[T models.Category | models.Genre] interface {
	List(ctx context.Context, search string, page repository.Page) ([]T, int64, error)
	Get(ctx context.Context, slug string) (*T, error)
	Create(ctx context.Context, req dto.CreateSlugRequest) (*T, error)
	Update(ctx context.Context, slug string, req dto.UpdateSlugRequest) (*T, error)
	Delete(ctx context.Context, slug string) error
}

type (
	CategoryService = SlugService[models.Category]
	GenreService    = SlugService[models.Genre]
)

type slugService[T models.Category | models.Genre] struct {
	repo     repository.SlugRepository[T]
	notFound error
	kind     string
	// fields exposes the name and slug of an item for reading and writing
	fields func(*T) (name, slug *string)
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &slugService[models.Category]{
		repo:     repo,
		notFound: ErrCategoryNotFound,
		kind:     "category",
		fields:   func(c *models.Category) (*string, *string) { return &c.Name, &c.Slug },
	}
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &slugService[models.Genre]{
		repo:     repo,
		notFound: ErrGenreNotFound,
		kind:     "genre",
		fields:   func(g *models.Genre) (*string, *string) { return &g.Name, &g.Slug },
	}
}

func (s *slugService[T]) List(ctx context.Context, search string, page repository.Page) ([]T, int64, error) {
	return s.repo.List(ctx, search, page)
}

func (s *slugService[T]) Get(ctx context.Context, slug string) (*T, error) {
	item, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, s.notFound
		}
		return nil, fmt.Errorf("find %s: %w", s.kind, err)
	}
	return item, nil
}

func (s *slugService[T]) Create(ctx context.Context, req dto.CreateSlugRequest) (*T, error) {
	item := new(T)
	name, slug := s.fields(item)
	*name, *slug = req.Name, req.Slug

	if err := s.validate(ctx, item, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.slugTaken()
		}
		return nil, err
	}
	return item, nil
}

func (s *slugService[T]) Update(ctx context.Context, slug string, req dto.UpdateSlugRequest) (*T, error) {
	item, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	name, newSlug := s.fields(item)
	if req.Name != nil {
		*name = *req.Name
	}
	if req.Slug != nil {
		*newSlug = *req.Slug
	}

	if err := s.validate(ctx, item, slug); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.slugTaken()
		}
		return nil, err
	}
	return item, nil
}

func (s *slugService[T]) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return s.notFound
		}
		return err
	}
	return nil
}

// validate checks the fields and slug uniqueness; currentSlug is the slug the
// item is stored under, empty for a new item.
func (s *slugService[T]) validate(ctx context.Context, item *T, currentSlug string) error {
	name, slug := s.fields(item)
	errs := fieldErrors{}
	checkName(errs, *name)
	checkSlug(errs, *slug)
	if err := errs.err(); err != nil {
		return err
	}

	if *slug == currentSlug {
		return nil
	}
	if _, err := s.repo.FindBySlug(ctx, *slug); err == nil {
		return s.slugTaken()
	} else if !repository.IsNotFound(err) {
		return fmt.Errorf("check %s slug: %w", s.kind, err)
	}
	return nil
}

func (s *slugService[T]) slugTaken() error {
	return newValidationError("slug", fmt.Sprintf("%s with this slug already exists", s.kind))
}
