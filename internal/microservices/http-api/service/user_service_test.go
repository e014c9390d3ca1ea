package service

import (
	"context"
	"testing"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpdateMe_NonAdminRoleIsDropped(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	me := &models.User{ID: 3, Username: "bob", Email: "bob@x.com", Role: models.RoleUser}
	actor := ActorFor(me)
	repo.On("FindByID", mock.Anything, uint(3)).Return(me, nil)
	repo.On("FindByUsername", mock.Anything, "bob").Return(me, nil)
	repo.On("FindByEmail", mock.Anything, "bob@x.com").Return(me, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	got, err := svc.UpdateMe(context.Background(), actor, dto.UpdateUserRequest{
		Role: ptr(models.RoleAdmin),
		Bio:  ptr("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, "hello", got.Bio)
	repo.AssertExpectations(t)
}

func TestUpdateMe_AdminMayChangeOwnRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	me := &models.User{ID: 1, Username: "root", Email: "root@x.com", Role: models.RoleAdmin}
	repo.On("FindByID", mock.Anything, uint(1)).Return(me, nil)
	repo.On("FindByUsername", mock.Anything, "root").Return(me, nil)
	repo.On("FindByEmail", mock.Anything, "root@x.com").Return(me, nil)
	repo.On("Update", mock.Anything, me).Return(nil)

	got, err := svc.UpdateMe(context.Background(), ActorFor(me), dto.UpdateUserRequest{Role: ptr(models.RoleModerator)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, got.Role)
}

func TestCreateUser_Validation(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "me", Email: "me@x.com"})
	requireFieldError(t, err, "username")

	_, err = svc.Create(context.Background(), dto.CreateUserRequest{Username: "bob", Email: "bob@x.com", Role: "king"})
	requireFieldError(t, err, "role")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("FindByUsername", mock.Anything, "bob").Return(&models.User{ID: 1, Username: "bob"}, nil)
	repo.On("FindByEmail", mock.Anything, "new@x.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "bob", Email: "new@x.com"})
	requireFieldError(t, err, "username")
}

func TestCreateUser_DefaultsRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("FindByUsername", mock.Anything, "ann").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "ann@x.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	got, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "ann", Email: "ann@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestCreateUser_StorageRaceIsValidation(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("FindByUsername", mock.Anything, "ann").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "ann@x.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "ann", Email: "ann@x.com"})
	requireFieldError(t, err, NonFieldKey)
}

func TestGetAndDeleteUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), ErrNotFound)
}

func TestGetMe_Anonymous(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)
	repo.On("FindByID", mock.Anything, uint(0)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetMe(context.Background(), policy.Anonymous())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
