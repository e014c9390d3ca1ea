package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reviewhub/internal/mailer"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/repository"
)

// AuthConfig holds what the signup flow needs to mail confirmation codes.
type AuthConfig struct {
	MailFrom    string
	MailSubject string
	MailTimeout time.Duration
}

type AuthService interface {
	// SignUp creates the (username, email) account or finds the existing one,
	// then mails a fresh confirmation code.
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	// ExchangeToken trades a confirmation code for an access token.
	ExchangeToken(ctx context.Context, username, code string) (string, error)
	// Authenticate resolves a bearer token into the actor it belongs to.
	Authenticate(ctx context.Context, token string) (policy.Actor, error)
}

type authService struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	mailer   mailer.Mailer
	cfg      AuthConfig
	logger   *slog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	issuer TokenIssuer,
	m mailer.Mailer,
	cfg AuthConfig,
	logger *slog.Logger,
) AuthService {
	if cfg.MailTimeout <= 0 {
		cfg.MailTimeout = 10 * time.Second
	}
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		mailer:   m,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	errs := fieldErrors{}
	checkUsername(errs, username)
	checkEmail(errs, email)
	if err := errs.err(); err != nil {
		return nil, err
	}

	user, _, err := s.userRepo.GetOrCreate(ctx, username, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, s.signupConflict(ctx, username, email)
		}
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	code := newCode()
	hash, err := hashCode(code)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.userRepo.SetConfirmationCode(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}
	user.ConfirmationCode = &hash

	s.sendCode(user.Username, user.Email, code)
	return user, nil
}

// signupConflict names the field that is already held by another account.
func (s *authService) signupConflict(ctx context.Context, username, email string) error {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing.Username != username {
		return fieldError("email", ErrSignupConflict)
	}
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing.Email != email {
		return fieldError("username", ErrSignupConflict)
	}
	// both lookups raced with a concurrent change
	return fieldError(NonFieldKey, ErrSignupConflict)
}

// sendCode mails the code in the background; delivery failures are logged
// and never reach the caller.
func (s *authService) sendCode(username, email, code string) {
	msg := mailer.Message{
		From:    s.cfg.MailFrom,
		To:      email,
		Subject: s.cfg.MailSubject,
		Body:    fmt.Sprintf("%s, your confirmation code: %s", username, code),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.MailTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("send confirmation code", "to", email, "error", err)
		}
	}()
}

func (s *authService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	errs := fieldErrors{}
	if username == "" {
		errs.add("username", "this field is required")
	}
	if code == "" {
		errs.add("confirmation_code", "this field is required")
	}
	if err := errs.err(); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.ConfirmationCode == nil || !verifyCode(*user.ConfirmationCode, code) {
		return "", fieldError("confirmation_code", ErrInvalidCode)
	}

	return s.issuer.Issue(user)
}

func (s *authService) Authenticate(ctx context.Context, token string) (policy.Actor, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return policy.Anonymous(), err
	}

	// role and superuser flag come from the row, not the token
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return policy.Anonymous(), ErrInvalidToken
		}
		return policy.Anonymous(), fmt.Errorf("load token user: %w", err)
	}
	return ActorFor(user), nil
}

// ActorFor builds the policy actor for an authenticated user.
func ActorFor(user *models.User) policy.Actor {
	return policy.Actor{
		UserID:        user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
		Superuser:     user.IsSuperuser,
	}
}

// IsTokenError reports whether err means the bearer credential is unusable.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}
