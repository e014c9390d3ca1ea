package handler

import (
	"context"
	"net/http"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the signup and token routes behind extra, which
// carries the rate limiter when one is configured.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	auth := router.Group("/auth", extra...)
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/token", h.Token)
	}
}

// SignUp mails a confirmation code to a new or existing identity
// POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.authService.SignUp(ctx, req.Username, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignUpResponse{Username: user.Username, Email: user.Email})
}

// Token exchanges a confirmation code for an access token
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	token, err := h.authService.ExchangeToken(ctx, req.Username, req.ConfirmationCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Access: token})
}
