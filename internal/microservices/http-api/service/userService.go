package service

import (
	"context"
	"fmt"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/repository"
)

type UserService interface {
	List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error

	GetMe(ctx context.Context, actor policy.Actor) (*models.User, error)
	// UpdateMe drops the role change unless the actor is already an admin.
	UpdateMe(ctx context.Context, actor policy.Actor, req dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	errs := fieldErrors{}
	validateUser(errs, user)
	if err := errs.err(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newValidationError(NonFieldKey, "a user with that username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, req)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) GetMe(ctx context.Context, actor policy.Actor) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, actor policy.Actor, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetMe(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !policy.CanChangeOwnRole(actor) {
		req.Role = nil
	}
	return s.apply(ctx, user, req)
}

// apply merges the non-nil fields of req into user, validates and saves.
func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	errs := fieldErrors{}
	validateUser(errs, user)
	if err := errs.err(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newValidationError(NonFieldKey, "a user with that username or email already exists")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// checkUnique reports username or email already held by another user.
func (s *userService) checkUnique(ctx context.Context, user *models.User) error {
	errs := fieldErrors{}
	if other, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && other.ID != user.ID {
		errs.add("username", "a user with that username already exists")
	} else if err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("check username: %w", err)
	}
	if other, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && other.ID != user.ID {
		errs.add("email", "a user with that email already exists")
	} else if err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("check email: %w", err)
	}
	return errs.err()
}

func validateUser(errs fieldErrors, user *models.User) {
	checkUsername(errs, user.Username)
	checkEmail(errs, user.Email)
	checkMaxLen(errs, "first_name", user.FirstName, maxPersonName)
	checkMaxLen(errs, "last_name", user.LastName, maxPersonName)
	if !models.ValidRole(user.Role) {
		errs.add("role", fmt.Sprintf("%q is not a valid choice", user.Role))
	}
}
