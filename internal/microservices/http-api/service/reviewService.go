package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID uint, page repository.Page) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error)
	Create(ctx context.Context, actor policy.Actor, titleID uint, req dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	ok, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTitleNotFound
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID uint, page repository.Page) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.Get(ctx, titleID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, actor policy.Actor, titleID uint, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &models.Review{TitleID: titleID, AuthorID: actor.UserID, Text: req.Text}
	if req.Score != nil {
		review.Score = *req.Score
	}
	errs := fieldErrors{}
	validateReview(errs, review)
	if err := errs.err(); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForAuthor(ctx, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fieldError(NonFieldKey, ErrDuplicateReview)
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// a concurrent insert slipped past the pre-check
		if repository.IsUniqueViolation(err) {
			return nil, fieldError(NonFieldKey, ErrDuplicateReview)
		}
		return nil, err
	}
	review.Author = models.User{ID: actor.UserID, Username: actor.Username}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if d := policy.MayActOnAuthored(actor, http.MethodPatch, review.AuthorID); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	errs := fieldErrors{}
	validateReview(errs, review)
	if err := errs.err(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if d := policy.MayActOnAuthored(actor, http.MethodDelete, review.AuthorID); !d.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		if repository.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func validateReview(errs fieldErrors, review *models.Review) {
	if strings.TrimSpace(review.Text) == "" {
		errs.add("text", "this field is required")
	}
	checkScore(errs, review.Score)
}
