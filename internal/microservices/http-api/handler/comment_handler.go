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

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes under a /reviews/:review_id group
func (h *CommentHandler) RegisterRoutes(review *gin.RouterGroup) {
	comments := review.Group("/comments", middleware.RequirePolicy(policy.MayAccessAuthored))
	{
		comments.GET("", h.List)
		comments.POST("", h.Create)
		comments.GET("/:comment_id", h.Get)
		comments.PATCH("/:comment_id", h.Update)
		comments.DELETE("/:comment_id", h.Delete)
	}
}

// commentPath reads the title, review and, when withComment is set, comment ids.
func commentPath(c *gin.Context, withComment bool) (titleID, reviewID, commentID uint, ok bool) {
	if titleID, ok = parseID(c, "title_id"); !ok {
		return
	}
	if reviewID, ok = parseID(c, "review_id"); !ok {
		return
	}
	if withComment {
		commentID, ok = parseID(c, "comment_id")
	}
	return
}

// GET .../reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, _, ok := commentPath(c, false)
	if !ok {
		return
	}
	page := pageFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comments, total, err := h.commentService.List(ctx, titleID, reviewID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.FromComments(comments), total, page.Number, page.Size))
}

// GET .../comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.commentService.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// POST .../reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, _, ok := commentPath(c, false)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.commentService.Create(ctx, middleware.ActorFrom(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// PATCH .../comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c, true)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	comment, err := h.commentService.Update(ctx, middleware.ActorFrom(c), titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// DELETE .../comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.commentService.Delete(ctx, middleware.ActorFrom(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
