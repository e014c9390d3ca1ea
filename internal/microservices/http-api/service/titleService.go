package service

import (
	"context"
	"fmt"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error)
	Get(ctx context.Context, id uint) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id uint, req dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id uint) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page)
}

func (s *titleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTitleNotFound
		}
		return nil, fmt.Errorf("get title: %w", err)
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	title := &models.Title{Name: req.Name, Description: req.Description}
	if req.Year != nil {
		title.Year = *req.Year
	}

	errs := fieldErrors{}
	validateTitle(errs, title)
	if req.Category != nil && *req.Category != "" {
		title.CategoryID = s.resolveCategory(ctx, errs, *req.Category)
	}
	genreIDs, err := s.resolveGenres(ctx, errs, req.Genre)
	if err != nil {
		return nil, err
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title, genreIDs); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newValidationError("name", "title with this name already exists")
		}
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id uint, req dto.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}

	errs := fieldErrors{}
	validateTitle(errs, title)
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			title.CategoryID = s.resolveCategory(ctx, errs, *req.Category)
		}
		title.Category = nil
	}

	var genreIDs []uint
	if req.Genre != nil {
		genreIDs, err = s.resolveGenres(ctx, errs, req.Genre)
		if err != nil {
			return nil, err
		}
		if genreIDs == nil {
			// an explicit empty list clears the genres
			genreIDs = []uint{}
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if err := s.titleRepo.Update(ctx, title, genreIDs); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newValidationError("name", "title with this name already exists")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, errs fieldErrors, slug string) *uint {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		errs.add("category", fmt.Sprintf("object with slug=%s does not exist", slug))
		return nil
	}
	return &category.ID
}

// resolveGenres maps slugs to ids, recording any unknown slug on errs.
func (s *titleService) resolveGenres(ctx context.Context, errs fieldErrors, slugs []string) ([]uint, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]uint, len(genres))
	for _, g := range genres {
		bySlug[g.Slug] = g.ID
	}

	ids := make([]uint, 0, len(slugs))
	var missing []string
	for _, slug := range slugs {
		id, ok := bySlug[slug]
		if !ok {
			missing = append(missing, slug)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		errs.add("genre", fmt.Sprintf("object with slug=%s does not exist", strings.Join(missing, ",")))
	}
	return ids, nil
}

func validateTitle(errs fieldErrors, title *models.Title) {
	checkName(errs, title.Name)
	checkYear(errs, title.Year)
}
