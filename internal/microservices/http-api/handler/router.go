package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/service"
	"reviewhub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the router serves.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Categories service.CategoryService
	Genres     service.GenreService
	Titles     service.TitleService
	Reviews    service.ReviewService
	Comments   service.CommentService
}

// NewRouter builds the /api/v1 routes. authLimiter, when set, throttles the
// signup and token endpoints.
func NewRouter(svc Services, logger *slog.Logger, authLimiter ratelimit.Limiter) http.Handler {
	useJSONFieldNames()

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", middleware.Authenticate(svc.Auth))

	var throttle []gin.HandlerFunc
	if authLimiter != nil {
		throttle = append(throttle, middleware.RateLimit(authLimiter, logger))
	}
	NewAuthHandler(svc.Auth).RegisterRoutes(api, throttle...)
	NewUserHandler(svc.Users).RegisterRoutes(api)
	NewCategoryHandler(svc.Categories).RegisterRoutes(api, "/categories")
	NewGenreHandler(svc.Genres).RegisterRoutes(api, "/genres")

	title := NewTitleHandler(svc.Titles).RegisterRoutes(api)
	review := NewReviewHandler(svc.Reviews).RegisterRoutes(title)
	NewCommentHandler(svc.Comments).RegisterRoutes(review)

	return stripTrailingSlash(r)
}

// stripTrailingSlash serves "/x/" as "/x" so both spellings hit one route.
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimSuffix(p, "/")
			if r.URL.RawPath != "" {
				r.URL.RawPath = strings.TrimSuffix(r.URL.RawPath, "/")
			}
		}
		next.ServeHTTP(w, r)
	})
}
