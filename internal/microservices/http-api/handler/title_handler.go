package handler

import (
	"context"
	"net/http"
	"strconv"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes and returns the /titles/:title_id
// group that reviews nest under.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) *gin.RouterGroup {
	titles := router.Group("/titles")
	catalog := titles.Group("", middleware.RequirePolicy(policy.MayAccessCatalog))
	{
		catalog.GET("", h.List)
		catalog.POST("", h.Create)
		catalog.GET("/:title_id", h.Get)
		catalog.PATCH("/:title_id", h.Update)
		catalog.DELETE("/:title_id", h.Delete)
	}
	return titles.Group("/:title_id")
}

// filterFrom reads the title filters; a non-numeric year is ignored.
func filterFrom(c *gin.Context) repository.TitleFilter {
	f := repository.TitleFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		f.Year = &year
	}
	return f
}

// List titles filtered by name, year, category and genre
// GET /api/v1/titles
func (h *TitleHandler) List(c *gin.Context) {
	page := pageFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	titles, total, err := h.titleService.List(ctx, filterFrom(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.FromTitles(titles), total, page.Number, page.Size))
}

// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	title, err := h.titleService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	title, err := h.titleService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromTitle(title))
}

// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	var req dto.UpdateTitleRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	title, err := h.titleService.Update(ctx, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.titleService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
