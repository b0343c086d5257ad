package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/repository/common"
)

// ErrCommentNotFound возвращается, когда комментарий не найден.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository отвечает за работу с таблицей comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository создаёт экземпляр репозитория.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create вставляет новый комментарий с нулевыми лайками.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (report_id, text, author, author_id, reply_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, likes, liked_by, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		comment.ReportID, comment.Text, comment.Author, comment.AuthorID, comment.ReplyTo,
	).Scan(&comment.ID, &comment.Likes, &comment.LikedBy, &comment.CreatedAt); err != nil {
		return fmt.Errorf("comment repository: create %w", err)
	}

	return nil
}

// GetByID возвращает комментарий по идентификатору.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return common.GetByID[models.Comment](ctx, r.db, "comments", id, ErrCommentNotFound)
}

// ListByReport возвращает комментарии обращения от старых к новым.
func (r *CommentRepository) ListByReport(ctx context.Context, reportID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, `
		SELECT * FROM comments WHERE report_id = $1 ORDER BY created_at ASC
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("comment repository: list by report %w", err)
	}
	return comments, nil
}

// Delete удаляет комментарий.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("comment repository: delete %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// ToggleLike атомарно переключает лайк пользователя: членство в liked_by и
// счётчик likes меняются одним UPDATE по прежней версии строки, поэтому
// конкурентные переключения разных пользователей не теряются.
func (r *CommentRepository) ToggleLike(ctx context.Context, id int64, userID uuid.UUID) (*models.Comment, error) {
	query := `
		UPDATE comments SET
			liked_by = CASE WHEN $2 = ANY(liked_by)
				THEN array_remove(liked_by, $2)
				ELSE array_append(liked_by, $2) END,
			likes = CASE WHEN $2 = ANY(liked_by)
				THEN likes - 1
				ELSE likes + 1 END
		WHERE id = $1
		RETURNING *
	`

	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("comment repository: toggle like %w", err)
	}

	return &comment, nil
}
