package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockAuthRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockAuthRepo) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockAuthRepo) DeleteSession(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *mockAuthRepo) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *mockAuthRepo) DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *mockAuthRepo) DeleteExpiredSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func newTestTokenManager() *TokenManager {
	return NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 720*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ivan@example.com").Return(nil, repository.ErrUserNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	repo.On("CreateSession", ctx, mock.AnythingOfType("*models.Session")).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "Ivan@Example.com",
		Password: "Password123",
	}, map[string]string{"ip": "127.0.0.1"})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "ivan@example.com", result.User.Email)
	assert.Equal(t, models.RoleResident, result.User.Role)
	assert.Equal(t, "ivan", result.User.Username)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ivan@example.com").Return(&models.User{Email: "ivan@example.com"}, nil)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "ivan@example.com",
		Password: "Password123",
	}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "уже зарегистрирован")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_AlwaysResident(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, mock.Anything).Return(nil, repository.ErrUserNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, models.RoleResident, user.Role)
	}).Return(nil)
	repo.On("CreateSession", ctx, mock.Anything).Return(nil)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "someone@example.com",
		Password: "Password123",
	}, nil)

	assert.NoError(t, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Correct123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(&models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "Wrong123"}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверные учетные данные")
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Password123"}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверные учетные данные")
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", ctx, "ivan@example.com").Return(&models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "Password123"}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "заблокирована")
}

func TestAuthService_Refresh_RotatesSession(t *testing.T) {
	repo := new(mockAuthRepo)
	tokens := newTestTokenManager()
	svc := NewAuthService(repo, tokens)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Email: "ivan@example.com", Role: models.RoleResident, IsActive: true}
	pair, _, refreshExp, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	repo.On("GetSessionByToken", ctx, pair.RefreshToken).Return(&models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    refreshExp,
	}, nil)
	repo.On("GetByID", ctx, user.ID).Return(user, nil)
	repo.On("DeleteSession", ctx, pair.RefreshToken).Return(nil)
	repo.On("CreateSession", ctx, mock.AnythingOfType("*models.Session")).Return(nil)

	newPair, err := svc.Refresh(ctx, pair.RefreshToken, nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	repo.AssertCalled(t, "DeleteSession", ctx, pair.RefreshToken)
	repo.AssertCalled(t, "CreateSession", ctx, mock.Anything)
}

func TestAuthService_Refresh_ExpiredSession(t *testing.T) {
	repo := new(mockAuthRepo)
	tokens := newTestTokenManager()
	svc := NewAuthService(repo, tokens)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Email: "ivan@example.com"}
	pair, _, _, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	repo.On("GetSessionByToken", ctx, pair.RefreshToken).Return(&models.Session{
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}, nil)
	repo.On("DeleteSession", ctx, pair.RefreshToken).Return(nil)

	_, err = svc.Refresh(ctx, pair.RefreshToken, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "истекла")
}

func TestTokenManager_AccessTokenCarriesIdentity(t *testing.T) {
	tokens := newTestTokenManager()
	user := &models.User{
		ID:          uuid.New(),
		DisplayName: "Иван Петров",
		Role:        models.RoleAdmin,
	}

	pair, _, _, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	userID, name, role, err := tokens.ParseAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "Иван Петров", name)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestTokenManager_RejectsForeignToken(t *testing.T) {
	tokens := newTestTokenManager()
	foreign := NewTokenManager("other-access-secret", "other-refresh-secret", time.Minute, time.Hour)

	pair, _, _, err := foreign.GeneratePair(&models.User{ID: uuid.New()})
	assert.NoError(t, err)

	_, _, _, err = tokens.ParseAccess(pair.AccessToken)
	assert.Error(t, err)

	_, err = tokens.ParseRefresh(pair.RefreshToken)
	assert.Error(t, err)
}
