package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/cityvoice/cityvoice-backend/internal/logger"
	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
)

// Разрешённые типы изображений для фотографий обращений.
var allowedPhotoMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaRepository описывает зависимости сервиса от слоя хранилища.
type MediaRepository interface {
	Create(ctx context.Context, media *models.MediaFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileStorage описывает файловое хранилище фотографий.
type FileStorage interface {
	Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
}

// MediaService управляет фотографиями обращений: проверяет содержимое,
// кладёт файл в хранилище и ведёт учёт в базе.
type MediaService struct {
	repo    MediaRepository
	storage FileStorage
}

// NewMediaService создаёт сервис медиа-файлов.
func NewMediaService(repo MediaRepository, storage FileStorage) *MediaService {
	return &MediaService{repo: repo, storage: storage}
}

// Upload проверяет магические байты файла и сохраняет его.
// Тип определяется по содержимому, расширению имени не доверяем.
func (s *MediaService) Upload(ctx context.Context, sess Session, originalName string, r io.Reader) (*models.MediaFile, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл")
	}
	if n == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return nil, apperror.New(apperror.ErrCodeValidation, "не удалось определить тип файла, разрешены только изображения")
	}
	if !allowedPhotoMIMEs[kind.MIME.Value] {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("неподдерживаемый тип файла (%s), разрешены jpeg, png, gif и webp", kind.MIME.Value))
	}

	// Склеиваем прочитанный префикс с остатком потока.
	full := io.MultiReader(bytes.NewReader(head[:n]), r)

	relativePath, size, err := s.storage.Save(ctx, sess.UserID, originalName, full)
	if err != nil {
		return nil, err
	}

	media := &models.MediaFile{
		UserID:   sess.UserID,
		FilePath: filepath.ToSlash(relativePath),
		FileType: kind.MIME.Value,
		FileSize: size,
	}

	if err := s.repo.Create(ctx, media); err != nil {
		_ = s.storage.Delete(ctx, relativePath)
		return nil, err
	}

	return media, nil
}

// Get возвращает метаданные файла.
func (s *MediaService) Get(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	media, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, apperror.ErrMediaNotFound
		}
		return nil, err
	}
	return media, nil
}

// Delete удаляет файл пользователя. Чужие файлы может удалять
// только администратор.
func (s *MediaService) Delete(ctx context.Context, sess Session, id uuid.UUID) error {
	media, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if media.UserID != sess.UserID && !sess.IsAdmin() {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.storage.Delete(ctx, media.FilePath)
}

// Remove удаляет файл без проверки прав. Используется сервисом обращений
// при каскадной подчистке фотографии удалённого обращения.
func (s *MediaService) Remove(ctx context.Context, id uuid.UUID) error {
	media, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, media.FilePath); err != nil {
		logger.Log.WithError(err).Warn("не удалось удалить файл фотографии")
	}
	return nil
}
