package handler

import (
	"context"
	"net/http"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// SlugHandler serves categories and genres, which share one shape.
type SlugHandler[T models.Category | models.Genre] struct {
	svc    service.SlugService[T]
	render func(*T) dto.SlugResponse
	list   func([]T) []dto.SlugResponse
}

func NewCategoryHandler(svc service.CategoryService) *SlugHandler[models.Category] {
	return &SlugHandler[models.Category]{svc: svc, render: dto.FromCategory, list: dto.FromCategories}
}

func NewGenreHandler(svc service.GenreService) *SlugHandler[models.Genre] {
	return &SlugHandler[models.Genre]{svc: svc, render: dto.FromGenre, list: dto.FromGenres}
}

// RegisterRoutes mounts the handler under path, e.g. "/categories"
func (h *SlugHandler[T]) RegisterRoutes(router *gin.RouterGroup, path string) {
	rg := router.Group(path, middleware.RequirePolicy(policy.MayAccessCatalog))
	{
		rg.GET("", h.List)
		rg.POST("", h.Create)
		rg.GET("/:slug", h.Get)
		rg.PATCH("/:slug", h.Update)
		rg.DELETE("/:slug", h.Delete)
	}
}

func (h *SlugHandler[T]) List(c *gin.Context) {
	page := pageFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	items, total, err := h.svc.List(ctx, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(h.list(items), total, page.Number, page.Size))
}

func (h *SlugHandler[T]) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Get(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(item))
}

func (h *SlugHandler[T]) Create(c *gin.Context) {
	var req dto.CreateSlugRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.render(item))
}

func (h *SlugHandler[T]) Update(c *gin.Context) {
	var req dto.UpdateSlugRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Update(ctx, c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(item))
}

func (h *SlugHandler[T]) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
