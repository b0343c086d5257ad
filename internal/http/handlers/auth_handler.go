package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/dto"
	"github.com/cityvoice/cityvoice-backend/internal/http/handlers/common"
	"github.com/cityvoice/cityvoice-backend/internal/service"
	"github.com/cityvoice/cityvoice-backend/internal/validation"
)

// AuthHandler предоставляет HTTP слой для регистрации и входа.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register обрабатывает POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if req.Username != "" {
		if err := validation.ValidateUsername(req.Username); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	if req.DisplayName != "" {
		if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	}, requestMeta(c))
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:   result.User,
		Tokens: result.TokenPair,
	})
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if strings.TrimSpace(req.Password) == "" {
		common.RespondBadRequest(c, "пароль обязателен")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, requestMeta(c))
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:   result.User,
		Tokens: result.TokenPair,
	})
}

// Refresh обрабатывает POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	tokenPair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokenPair})
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "сессия завершена"})
}

// ListSessions обрабатывает GET /api/auth/sessions.
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	sessions, err := h.auth.ListSessions(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// DeleteSession обрабатывает DELETE /api/auth/sessions/:id.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор сессии")
		return
	}

	if err := h.auth.DeleteSession(c.Request.Context(), sessionID, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "сессия удалена"})
}

// requestMeta собирает метаданные клиента для записи в сессию.
func requestMeta(c *gin.Context) map[string]string {
	return map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}
}
