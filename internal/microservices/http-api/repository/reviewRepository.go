package repository

import (
	"context"

	"reviewhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID uint, page Page) ([]models.Review, int64, error)
	ExistsForAuthor(ctx context.Context, titleID, authorID uint) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review; a second review by the same author fails on
// idx_reviews_title_author
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("Author", "Title").Create(review).Error
}

// Update an existing review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("Author", "Title").Save(review).Error
}

// Delete a review; comments go with it via ON DELETE CASCADE
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves a review only if it belongs to the given title
func (r *reviewRepository) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByTitle retrieves the reviews of a title with pagination
func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint, page Page) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).Where("title_id = ?", titleID).
		Preload("Author").
		Order("id DESC").
		Scopes(paginate(page)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ExistsForAuthor is the pre-insert duplicate check
func (r *reviewRepository) ExistsForAuthor(ctx context.Context, titleID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}
