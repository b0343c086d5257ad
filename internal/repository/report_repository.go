package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cityvoice/cityvoice-backend/internal/models"
)

// ErrReportNotFound возвращается, когда обращение не найдено.
var ErrReportNotFound = errors.New("report not found")

// reportColumns — выборка обращения вместе с количеством комментариев.
const reportColumns = `
	r.id, r.title, r.description, r.category, r.status, r.location, r.photo_id,
	r.user_id, r.user_name, r.upvotes, r.user_upvoted, r.created_at,
	(SELECT COUNT(*) FROM comments c WHERE c.report_id = r.id) AS comment_count
`

// ReportFilter описывает фильтры списка обращений.
type ReportFilter struct {
	Category string
	Status   string
	UserID   *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// ReportRepository отвечает за работу с таблицей reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create вставляет новое обращение. Статус, счётчик голосов и список
// проголосовавших задаются базой по умолчанию.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (title, description, category, location, photo_id, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, upvotes, user_upvoted
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		report.Title, report.Description, report.Category, report.Location,
		report.PhotoID, report.UserID, report.UserName, report.CreatedAt,
	).Scan(&report.ID, &report.Status, &report.Upvotes, &report.UserUpvoted); err != nil {
		return fmt.Errorf("report repository: create %w", err)
	}

	return nil
}

// GetByID возвращает обращение с количеством комментариев.
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	query := fmt.Sprintf(`SELECT %s FROM reports r WHERE r.id = $1`, reportColumns)

	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("report repository: get by id %w", err)
	}

	return &report, nil
}

// List возвращает страницу обращений по фильтру и общее количество.
func (r *ReportRepository) List(ctx context.Context, filter ReportFilter, limit, offset int) ([]models.Report, int, error) {
	where := ""
	args := []interface{}{}

	addCond := func(cond string, value interface{}) {
		args = append(args, value)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.Category != "" {
		addCond("r.category = $%d", filter.Category)
	}
	if filter.Status != "" {
		addCond("r.status = $%d", filter.Status)
	}
	if filter.UserID != nil {
		addCond("r.user_id = $%d", *filter.UserID)
	}
	if filter.From != nil {
		addCond("r.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCond("r.created_at <= $%d", *filter.To)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reports r` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("report repository: count %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM reports r%s ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`,
		reportColumns, where, len(args)-1, len(args),
	)

	var reports []models.Report
	if err := r.db.SelectContext(ctx, &reports, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("report repository: list %w", err)
	}

	return reports, total, nil
}

// Update перезаписывает редактируемые поля обращения.
func (r *ReportRepository) Update(ctx context.Context, report *models.Report) error {
	query := `
		UPDATE reports
		SET title = $2, description = $3, category = $4, location = $5, photo_id = $6, created_at = $7
		WHERE id = $1
	`

	res, err := r.db.ExecContext(
		ctx, query,
		report.ID, report.Title, report.Description, report.Category,
		report.Location, report.PhotoID, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("report repository: update %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}

// UpdateStatus меняет статус обращения.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reports SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("report repository: update status %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}

// Delete удаляет обращение. Комментарии удаляются каскадом на уровне базы.
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("report repository: delete %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}

// ToggleUpvote атомарно переключает голос пользователя: членство в
// user_upvoted и счётчик upvotes меняются одним UPDATE, оба CASE видят
// прежнюю версию строки, поэтому конкурентные переключения не теряются.
func (r *ReportRepository) ToggleUpvote(ctx context.Context, id int64, userID uuid.UUID) (*models.Report, error) {
	query := `
		UPDATE reports r SET
			user_upvoted = CASE WHEN $2 = ANY(user_upvoted)
				THEN array_remove(user_upvoted, $2)
				ELSE array_append(user_upvoted, $2) END,
			upvotes = CASE WHEN $2 = ANY(user_upvoted)
				THEN upvotes - 1
				ELSE upvotes + 1 END
		WHERE id = $1
		RETURNING ` + reportColumns

	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("report repository: toggle upvote %w", err)
	}

	return &report, nil
}
