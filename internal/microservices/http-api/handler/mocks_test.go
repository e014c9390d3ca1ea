package handler_test

import (
	"context"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (policy.Actor, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(policy.Actor), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Get(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserService) GetMe(ctx context.Context, actor policy.Actor) (*models.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, actor policy.Actor, req dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSlugService[T models.Category | models.Genre] struct {
	mock.Mock
}

func (m *MockSlugService[T]) List(ctx context.Context, search string, page repository.Page) ([]T, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *MockSlugService[T]) Get(ctx context.Context, slug string) (*T, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSlugService[T]) Create(ctx context.Context, req dto.CreateSlugRequest) (*T, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSlugService[T]) Update(ctx context.Context, slug string, req dto.UpdateSlugRequest) (*T, error) {
	args := m.Called(ctx, slug, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSlugService[T]) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id uint, req dto.UpdateTitleRequest) (*models.Title, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, titleID uint, page repository.Page) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, actor policy.Actor, titleID uint, req dto.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uint) error {
	args := m.Called(ctx, actor, titleID, reviewID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, titleID, reviewID uint, page repository.Page) ([]models.Comment, int64, error) {
	args := m.Called(ctx, titleID, reviewID, page)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	args := m.Called(ctx, titleID, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, actor policy.Actor, titleID, reviewID uint, req dto.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actor, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint, req dto.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actor, titleID, reviewID, commentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uint) error {
	args := m.Called(ctx, actor, titleID, reviewID, commentID)
	return args.Error(0)
}
