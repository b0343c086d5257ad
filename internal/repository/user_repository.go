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
	"github.com/cityvoice/cityvoice-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound возвращается, когда сессия не найдена.
var ErrSessionNotFound = errors.New("session not found")

// UserRepository отвечает за работу с таблицами users и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, display_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Email, user.Username, user.DisplayName, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", email, ErrUserNotFound)
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

// UpdateLastLoginAt отмечает время последнего входа.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user repository: update last login %w", err)
	}
	return nil
}

// CreateSession сохраняет refresh сессию.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetSessionByToken возвращает сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	if err := r.db.GetContext(ctx, &session, `SELECT * FROM user_sessions WHERE refresh_token = $1`, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}

	return &session, nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListSessions возвращает активные сессии пользователя.
func (r *UserRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT * FROM user_sessions WHERE user_id = $1 AND expires_at > NOW() ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("user repository: list sessions %w", err)
	}
	return sessions, nil
}

// DeleteSessionByID удаляет конкретную сессию пользователя.
func (r *UserRepository) DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("user repository: delete session by id %w", err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpiredSessions удаляет протухшие сессии и возвращает их количество.
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE expires_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("user repository: delete expired sessions %w", err)
	}

	n, _ := res.RowsAffected()
	return n, nil
}
