package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/microservices/http-api/handler"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"
	"reviewhub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	limiter := newAuthLimiter(ctx, cfg, logger)

	mail, err := mailer.New(cfg, logger)
	if err != nil {
		logger.Error("mailer setup failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	services := handler.Services{
		Auth: service.NewAuthService(userRepo, issuer, mail, service.AuthConfig{
			MailFrom:    cfg.MailFrom,
			MailSubject: cfg.MailSubject,
			MailTimeout: cfg.MailTimeout,
		}, logger),
		Users:      service.NewUserService(userRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Genres:     service.NewGenreService(genreRepo),
		Titles:     service.NewTitleService(titleRepo, categoryRepo, genreRepo),
		Reviews:    service.NewReviewService(reviewRepo, titleRepo),
		Comments:   service.NewCommentService(commentRepo, reviewRepo),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.NewRouter(services, logger, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// newAuthLimiter prefers the shared Redis window and falls back to the
// in-process limiter when REDIS_URL is unset or unreachable.
func newAuthLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info("rate limiting through redis")
			go func() {
				<-ctx.Done()
				_ = client.Close()
			}()
			return ratelimit.NewRedisLimiter(client, "ratelimit:auth", cfg.RateLimitBurst,
				ratelimit.WindowFor(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		logger.Warn("redis unavailable, using local rate limiter", "error", err)
	}

	local := ratelimit.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go local.Run(ctx)
	return local
}
