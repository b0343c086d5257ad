package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/logger"
	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
	"github.com/cityvoice/cityvoice-backend/internal/validation"
)

// События, публикуемые в ленту подключённых клиентов.
const (
	EventReportCreated       = "report.created"
	EventReportStatusChanged = "report.status_changed"
	EventCommentAdded        = "comment.added"
)

// ReportRepository описывает зависимости сервиса от слоя хранилища.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, filter repository.ReportFilter, limit, offset int) ([]models.Report, int, error)
	Update(ctx context.Context, report *models.Report) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	ToggleUpvote(ctx context.Context, id int64, userID uuid.UUID) (*models.Report, error)
}

// MediaRemover удаляет фотографию вместе с файлом на диске.
type MediaRemover interface {
	Remove(ctx context.Context, id uuid.UUID) error
}

// Publisher рассылает событие всем подключённым клиентам ленты.
type Publisher interface {
	Broadcast(event string, data interface{})
}

// CreateReportInput содержит поля нового обращения.
type CreateReportInput struct {
	Title       string
	Description string
	Category    string
	Location    *string
	PhotoID     *uuid.UUID
	Date        *time.Time
}

// UpdateReportInput содержит частичное обновление обращения.
type UpdateReportInput struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	PhotoID     *uuid.UUID
	Date        *time.Time
}

// ReportService реализует операции над обращениями и правила доступа к ним.
type ReportService struct {
	repo      ReportRepository
	media     MediaRemover
	publisher Publisher
}

// NewReportService создаёт сервис обращений.
func NewReportService(repo ReportRepository, media MediaRemover) *ReportService {
	return &ReportService{repo: repo, media: media}
}

// SetPublisher подключает ленту событий.
func (s *ReportService) SetPublisher(p Publisher) {
	s.publisher = p
}

// CreateReport создаёт обращение от имени вызывающего.
func (s *ReportService) CreateReport(ctx context.Context, sess Session, in CreateReportInput) (*models.Report, error) {
	if err := validation.ValidateReportTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateReportDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	createdAt := time.Now()
	if in.Date != nil {
		if err := validation.ValidateReportDate(*in.Date); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		createdAt = *in.Date
	}

	report := &models.Report{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		PhotoID:     in.PhotoID,
		UserID:      sess.UserID,
		UserName:    sess.UserName,
		CreatedAt:   createdAt,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publish(EventReportCreated, report)

	return report, nil
}

// GetReport возвращает обращение по идентификатору.
func (s *ReportService) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// ListReports возвращает страницу обращений. Доступен анонимно.
func (s *ReportService) ListReports(ctx context.Context, filter repository.ReportFilter, limit, offset int) ([]models.Report, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, filter, limit, offset)
}

// EditReport применяет частичное обновление. Редактировать обращение может
// только его автор или администратор.
func (s *ReportService) EditReport(ctx context.Context, sess Session, id int64, in UpdateReportInput) (*models.Report, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.UserID != sess.UserID && !sess.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	if in.Title != nil {
		if err := validation.ValidateReportTitle(*in.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		report.Title = *in.Title
	}
	if in.Description != nil {
		if err := validation.ValidateReportDescription(*in.Description); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		report.Description = *in.Description
	}
	if in.Category != nil {
		if err := validation.ValidateCategory(*in.Category); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		report.Category = *in.Category
	}
	if in.Location != nil {
		if err := validation.ValidateLocation(in.Location); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		report.Location = in.Location
	}
	if in.PhotoID != nil {
		report.PhotoID = in.PhotoID
	}
	if in.Date != nil {
		if err := validation.ValidateReportDate(*in.Date); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		report.CreatedAt = *in.Date
	}

	if err := s.repo.Update(ctx, report); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	return report, nil
}

// DeleteReport удаляет обращение автора или любое — для администратора.
// Комментарии удаляются каскадом, файл фотографии подчищается отдельно.
func (s *ReportService) DeleteReport(ctx context.Context, sess Session, id int64) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}

	if report.UserID != sess.UserID && !sess.IsAdmin() {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return apperror.ErrReportNotFound
		}
		return err
	}

	if report.PhotoID != nil && s.media != nil {
		// Потеря файла не критична: запись уже удалена, строка media
		// отвязана через ON DELETE SET NULL.
		if err := s.media.Remove(ctx, *report.PhotoID); err != nil && logger.Log != nil {
			logger.Log.WithError(err).Warn("не удалось удалить фотографию обращения")
		}
	}

	return nil
}

// ToggleUpvote переключает голос вызывающего за обращение.
func (s *ReportService) ToggleUpvote(ctx context.Context, sess Session, id int64) (*models.Report, error) {
	report, err := s.repo.ToggleUpvote(ctx, id, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// UpdateStatus меняет статус обращения. Смена статуса — модерационное
// действие, доступное только администратору.
func (s *ReportService) UpdateStatus(ctx context.Context, sess Session, id int64, status string) (*models.Report, error) {
	if !sess.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	if err := validation.ValidateReportStatus(status); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(EventReportStatusChanged, report)

	return report, nil
}

func (s *ReportService) publish(event string, data interface{}) {
	if s.publisher != nil {
		s.publisher.Broadcast(event, data)
	}
}
