package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
)

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil {
		comment.ID = 1
	}
	return args.Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListByReport(ctx context.Context, reportID int64) ([]models.Comment, error) {
	args := m.Called(ctx, reportID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCommentRepo) ToggleLike(ctx context.Context, id int64, userID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type mockReportRepoForComments struct {
	mock.Mock
}

func (m *mockReportRepoForComments) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func TestCommentService_AddComment_Success(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	pub := new(mockPublisher)
	svc := NewCommentService(repo, reports)
	svc.SetPublisher(pub)
	ctx := context.Background()
	sess := residentSession()

	reports.On("GetByID", ctx, int64(10)).Return(&models.Report{ID: 10}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Comment")).Return(nil)
	pub.On("Broadcast", EventCommentAdded, mock.AnythingOfType("*models.Comment")).Return()

	comment, err := svc.AddComment(ctx, sess, 10, "Подтверждаю, яма очень глубокая", nil)

	assert.NoError(t, err)
	assert.NotNil(t, comment)
	assert.Equal(t, int64(10), comment.ReportID)
	assert.Equal(t, sess.UserID, comment.AuthorID)
	assert.Equal(t, sess.UserName, comment.Author)
	pub.AssertCalled(t, "Broadcast", EventCommentAdded, mock.Anything)
}

func TestCommentService_AddComment_EmptyText(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, residentSession(), 10, "   ", nil)

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_AddComment_ReportMissing(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()

	reports.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrReportNotFound)

	_, err := svc.AddComment(ctx, residentSession(), 404, "Комментарий в никуда", nil)

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_DeleteComment_AuthorAllowed(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()
	sess := residentSession()

	repo.On("GetByID", ctx, int64(5)).Return(&models.Comment{ID: 5, AuthorID: sess.UserID}, nil)
	repo.On("Delete", ctx, int64(5)).Return(nil)

	err := svc.DeleteComment(ctx, sess, 5)

	assert.NoError(t, err)
}

func TestCommentService_DeleteComment_StrangerForbidden(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(&models.Comment{ID: 5, AuthorID: uuid.New()}, nil)

	err := svc.DeleteComment(ctx, residentSession(), 5)

	assert.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCommentService_DeleteComment_AdminAllowed(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(&models.Comment{ID: 5, AuthorID: uuid.New()}, nil)
	repo.On("Delete", ctx, int64(5)).Return(nil)

	err := svc.DeleteComment(ctx, adminSession(), 5)

	assert.NoError(t, err)
}

func TestCommentService_ToggleLike_NotFound(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()
	sess := residentSession()

	repo.On("ToggleLike", ctx, int64(77), sess.UserID).Return(nil, repository.ErrCommentNotFound)

	_, err := svc.ToggleLike(ctx, sess, 77)

	assert.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCommentService_ToggleLike_ReturnsCounters(t *testing.T) {
	repo := new(mockCommentRepo)
	reports := new(mockReportRepoForComments)
	svc := NewCommentService(repo, reports)
	ctx := context.Background()
	sess := residentSession()

	updated := &models.Comment{ID: 8, Likes: 2, LikedBy: []string{sess.UserID.String()}}
	repo.On("ToggleLike", ctx, int64(8), sess.UserID).Return(updated, nil)

	comment, err := svc.ToggleLike(ctx, sess, 8)

	assert.NoError(t, err)
	assert.Equal(t, 2, comment.Likes)
	assert.True(t, comment.HasLikeFrom(sess.UserID))
}
