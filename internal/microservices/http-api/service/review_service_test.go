package service

import (
	"context"
	"testing"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/policy"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	author    = policy.Actor{UserID: 10, Username: "bob", Role: models.RoleUser, Authenticated: true}
	stranger  = policy.Actor{UserID: 11, Username: "eve", Role: models.RoleUser, Authenticated: true}
	moderator = policy.Actor{UserID: 12, Username: "mod", Role: models.RoleModerator, Authenticated: true}
)

func newTestReviewService() (ReviewService, *MockReviewRepository, *MockTitleRepository) {
	reviews := new(MockReviewRepository)
	titles := new(MockTitleRepository)
	return NewReviewService(reviews, titles), reviews, titles
}

func TestReviewCreate_Success(t *testing.T) {
	svc, reviews, titles := newTestReviewService()

	titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
	reviews.On("ExistsForAuthor", mock.Anything, uint(1), uint(10)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)

	got, err := svc.Create(context.Background(), author, 1, dto.CreateReviewRequest{Text: "great", Score: ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Author.Username)
	assert.Equal(t, 8, got.Score)
	reviews.AssertExpectations(t)
}

func TestReviewCreate_TitleMissing(t *testing.T) {
	svc, reviews, titles := newTestReviewService()
	titles.On("Exists", mock.Anything, uint(99)).Return(false, nil)

	_, err := svc.Create(context.Background(), author, 99, dto.CreateReviewRequest{Text: "x", Score: ptr(5)})
	assert.ErrorIs(t, err, ErrTitleNotFound)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	svc, reviews, titles := newTestReviewService()

	titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
	reviews.On("ExistsForAuthor", mock.Anything, uint(1), uint(10)).Return(true, nil)

	_, err := svc.Create(context.Background(), author, 1, dto.CreateReviewRequest{Text: "again", Score: ptr(7)})
	verr := requireFieldError(t, err, NonFieldKey)
	assert.Equal(t, "one review per title per author", verr.Fields[NonFieldKey])
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewCreate_DuplicateRaceAtStorage(t *testing.T) {
	for name, storageErr := range map[string]error{
		"translated": gorm.ErrDuplicatedKey,
		"pg error":   &pgconn.PgError{Code: "23505"},
	} {
		t.Run(name, func(t *testing.T) {
			svc, reviews, titles := newTestReviewService()

			titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
			reviews.On("ExistsForAuthor", mock.Anything, uint(1), uint(10)).Return(false, nil)
			reviews.On("Create", mock.Anything, mock.Anything).Return(storageErr)

			_, err := svc.Create(context.Background(), author, 1, dto.CreateReviewRequest{Text: "race", Score: ptr(7)})
			assert.ErrorIs(t, err, ErrDuplicateReview)
		})
	}
}

func TestReviewCreate_ScoreOutOfRange(t *testing.T) {
	svc, _, titles := newTestReviewService()
	titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)

	for _, score := range []int{0, 11} {
		_, err := svc.Create(context.Background(), author, 1, dto.CreateReviewRequest{Text: "x", Score: ptr(score)})
		requireFieldError(t, err, "score")
	}
}

func TestReviewUpdate_ObjectPolicy(t *testing.T) {
	review := func() *models.Review {
		return &models.Review{ID: 3, TitleID: 1, AuthorID: 10, Text: "ok", Score: 6}
	}

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, reviews, titles := newTestReviewService()
		titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
		reviews.On("Get", mock.Anything, uint(1), uint(3)).Return(review(), nil)

		_, err := svc.Update(context.Background(), stranger, 1, 3, dto.UpdateReviewRequest{Score: ptr(1)})
		assert.ErrorIs(t, err, ErrForbidden)
		reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("author may edit", func(t *testing.T) {
		svc, reviews, titles := newTestReviewService()
		titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
		reviews.On("Get", mock.Anything, uint(1), uint(3)).Return(review(), nil)
		reviews.On("Update", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)

		got, err := svc.Update(context.Background(), author, 1, 3, dto.UpdateReviewRequest{Score: ptr(9)})
		require.NoError(t, err)
		assert.Equal(t, 9, got.Score)
	})

	t.Run("moderator may delete", func(t *testing.T) {
		svc, reviews, titles := newTestReviewService()
		titles.On("Exists", mock.Anything, uint(1)).Return(true, nil)
		reviews.On("Get", mock.Anything, uint(1), uint(3)).Return(review(), nil)
		reviews.On("Delete", mock.Anything, uint(3)).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), moderator, 1, 3))
	})
}

func TestReviewGet_WrongTitleIsNotFound(t *testing.T) {
	svc, reviews, titles := newTestReviewService()
	titles.On("Exists", mock.Anything, uint(2)).Return(true, nil)
	reviews.On("Get", mock.Anything, uint(2), uint(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 2, 3)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
