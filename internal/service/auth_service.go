package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
	"github.com/cityvoice/cityvoice-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteSession(ctx context.Context, refreshToken string) error
	ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error)
	DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error)
}

// AuthService инкапсулирует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register создаёт нового пользователя с ролью resident.
// Административные учётные записи заводятся только напрямую в базе.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta map[string]string) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	if _, err := s.repo.GetByEmail(ctx, strings.ToLower(in.Email)); err == nil {
		return nil, fmt.Errorf("auth service: email уже зарегистрирован")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	username := in.Username
	if username == "" {
		username = deriveUsername(in.Email)
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = username
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(in.Email),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(passHash),
		Role:         models.RoleResident,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Login проверяет учётные данные и выдаёт пару токенов.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta map[string]string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("auth service: неверные учетные данные")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("auth service: учётная запись заблокирована")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("auth service: неверные учетные данные")
	}

	if err := s.repo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh обменивает валидный refresh токен на новую пару, ротируя сессию.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta map[string]string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth service: refresh токен невалиден")
	}

	session, err := s.repo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth service: сессия не найдена")
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, refreshToken)
		return nil, fmt.Errorf("auth service: сессия истекла")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID != session.UserID {
		return nil, fmt.Errorf("auth service: refresh токен невалиден")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user, meta)
}

// Logout завершает сессию по refresh токену.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ListSessions возвращает активные сессии пользователя.
func (s *AuthService) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	return s.repo.ListSessions(ctx, userID)
}

// DeleteSession удаляет конкретную сессию пользователя.
func (s *AuthService) DeleteSession(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error {
	return s.repo.DeleteSessionByID(ctx, sessionID, userID)
}

// PurgeExpiredSessions удаляет протухшие сессии, возвращает их количество.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, time.Now())
}

// issueSession выпускает пару токенов и сохраняет refresh сессию.
func (s *AuthService) issueSession(ctx context.Context, user *models.User, meta map[string]string) (*TokenPair, error) {
	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}
	if ua := meta["user_agent"]; ua != "" {
		session.UserAgent = &ua
	}
	if ip := meta["ip"]; ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// deriveUsername собирает имя пользователя из локальной части email.
func deriveUsername(email string) string {
	local := strings.SplitN(strings.ToLower(email), "@", 2)[0]
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, local)
	if len(cleaned) < validation.MinUsernameLength {
		cleaned = cleaned + "_user"
	}
	return cleaned
}
