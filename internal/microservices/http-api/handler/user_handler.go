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

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the profile and user management routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")

	// registered before /:username so "me" never reaches the admin routes
	me := users.Group("/me", middleware.RequirePolicy(policy.MayAccessProfile))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}

	admin := users.Group("", middleware.RequirePolicy(policy.MayAccessIdentity))
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:username", h.Get)
		admin.PATCH("/:username", h.Update)
		admin.DELETE("/:username", h.Delete)
	}
}

// List users, optionally filtered by ?search=
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	page := pageFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	users, total, err := h.userService.List(ctx, c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(dto.FromUsers(users), total, page.Number, page.Size))
}

// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.userService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.userService.Get(ctx, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.userService.Update(ctx, c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.userService.Delete(ctx, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe returns the caller's own profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.userService.GetMe(ctx, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// UpdateMe edits the caller's own profile
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.userService.UpdateMe(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}
