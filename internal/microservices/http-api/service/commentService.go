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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uint, page repository.Page) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error)
	Create(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// requireReview resolves the review within its title; a review under another
// title counts as missing.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID uint) error {
	if _, err := s.reviewRepo.Get(ctx, titleID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("get review: %w", err)
	}
	return nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uint, page repository.Page) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.Get(ctx, reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.CreateCommentRequest) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{ReviewID: reviewID, AuthorID: actor.UserID, Text: req.Text}
	if err := validateComment(comment); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = models.User{ID: actor.UserID, Username: actor.Username}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if d := policy.MayActOnAuthored(actor, http.MethodPatch, comment.AuthorID); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if d := policy.MayActOnAuthored(actor, http.MethodDelete, comment.AuthorID); !d.Allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if repository.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func validateComment(comment *models.Comment) error {
	if strings.TrimSpace(comment.Text) == "" {
		return newValidationError("text", "this field is required")
	}
	return nil
}
