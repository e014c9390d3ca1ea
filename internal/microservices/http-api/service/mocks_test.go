package service

import (
	"context"
	"sync"

	"reviewhub/internal/mailer"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, username, email string) (*models.User, bool, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) SetConfirmationCode(ctx context.Context, id uint, codeHash string) error {
	args := m.Called(ctx, id, codeHash)
	return args.Error(0)
}

// MockSlugRepository mocks both the category and the genre repository
type MockSlugRepository[T models.Category | models.Genre] struct {
	mock.Mock
}

func (m *MockSlugRepository[T]) List(ctx context.Context, search string, page repository.Page) ([]T, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *MockSlugRepository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSlugRepository[T]) FindBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockSlugRepository[T]) Create(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSlugRepository[T]) Update(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSlugRepository[T]) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, filter repository.TitleFilter, page repository.Page) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, title *models.Title, genreIDs []uint) error {
	args := m.Called(ctx, title, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *models.Title, genreIDs []uint) error {
	args := m.Called(ctx, title, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID uint, page repository.Page) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsForAuthor(ctx context.Context, titleID, authorID uint) (bool, error) {
	args := m.Called(ctx, titleID, authorID)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) Get(ctx context.Context, reviewID, commentID uint) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID uint, page repository.Page) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, page)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

// fakeMailer records sent messages and signals each delivery attempt
type fakeMailer struct {
	mu        sync.Mutex
	sent      []mailer.Message
	err       error
	delivered chan struct{}
}

func (f *fakeMailer) deliveries() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delivered == nil {
		f.delivered = make(chan struct{}, 16)
	}
	return f.delivered
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	err := f.err
	f.mu.Unlock()

	f.deliveries() <- struct{}{}
	return err
}

func (f *fakeMailer) messages() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

func ptr[T any](v T) *T {
	return &v
}
