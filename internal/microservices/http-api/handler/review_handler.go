package handler

import (
	"context"
	"net/http"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes under a /titles/:title_id group and
// returns the /reviews/:review_id group that comments nest under.
func (h *ReviewHandler) RegisterRoutes(title *gin.RouterGroup) *gin.RouterGroup {
	reviews := title.Group("/reviews")
	authored := reviews.Group("", middleware.RequirePolicy(policy.MayAccessAuthored))
	{
		authored.GET("", h.List)
		authored.POST("", h.Create)
		authored.GET("/:review_id", h.Get)
		authored.PATCH("/:review_id", h.Update)
		authored.DELETE("/:review_id", h.Delete)
	}
	return reviews.Group("/:review_id")
}

// GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	page := pageFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	reviews, total, err := h.reviewService.List(ctx, titleID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.FromReviews(reviews), total, page.Number, page.Size))
}

// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.Get(ctx, titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.Create(ctx, middleware.ActorFrom(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.Update(ctx, middleware.ActorFrom(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.reviewService.Delete(ctx, middleware.ActorFrom(c), titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
