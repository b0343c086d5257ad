package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
	"github.com/cityvoice/cityvoice-backend/internal/validation"
)

// CommentRepository описывает зависимости сервиса от слоя хранилища.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByReport(ctx context.Context, reportID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, id int64, userID uuid.UUID) (*models.Comment, error)
}

// ReportRepoForComments — узкая зависимость для проверки существования обращения.
type ReportRepoForComments interface {
	GetByID(ctx context.Context, id int64) (*models.Report, error)
}

// CommentService реализует операции над комментариями.
type CommentService struct {
	repo      CommentRepository
	reports   ReportRepoForComments
	publisher Publisher
}

// NewCommentService создаёт сервис комментариев.
func NewCommentService(repo CommentRepository, reports ReportRepoForComments) *CommentService {
	return &CommentService{repo: repo, reports: reports}
}

// SetPublisher подключает ленту событий.
func (s *CommentService) SetPublisher(p Publisher) {
	s.publisher = p
}

// AddComment добавляет комментарий к существующему обращению.
func (s *CommentService) AddComment(ctx context.Context, sess Session, reportID int64, text string, replyTo *string) (*models.Comment, error) {
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateReplyTo(replyTo); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ReportID: reportID,
		Text:     text,
		Author:   sess.UserName,
		AuthorID: sess.UserID,
		ReplyTo:  replyTo,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Broadcast(EventCommentAdded, comment)
	}

	return comment, nil
}

// ListComments возвращает комментарии обращения.
func (s *CommentService) ListComments(ctx context.Context, reportID int64) ([]models.Comment, error) {
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	return s.repo.ListByReport(ctx, reportID)
}

// DeleteComment удаляет комментарий. Удалять может только автор
// комментария или администратор.
func (s *CommentService) DeleteComment(ctx context.Context, sess Session, commentID int64) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperror.ErrCommentNotFound
		}
		return err
	}

	if comment.AuthorID != sess.UserID && !sess.IsAdmin() {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperror.ErrCommentNotFound
		}
		return err
	}

	return nil
}

// ToggleLike переключает лайк вызывающего на комментарии.
func (s *CommentService) ToggleLike(ctx context.Context, sess Session, commentID int64) (*models.Comment, error) {
	comment, err := s.repo.ToggleLike(ctx, commentID, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, apperror.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
