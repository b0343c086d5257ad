package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/dto"
	"github.com/cityvoice/cityvoice-backend/internal/http/middleware"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

var (
	// ErrNoSession возвращается, когда в контексте нет личности вызывающего.
	ErrNoSession = errors.New("пользователь не найден в контексте")
)

// CurrentUserID извлекает идентификатор пользователя из gin.Context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrNoSession
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoSession
	}

	return userID, nil
}

// CurrentSession собирает личность вызывающего из контекста запроса.
func CurrentSession(c *gin.Context) (service.Session, error) {
	userID, err := CurrentUserID(c)
	if err != nil {
		return service.Session{}, err
	}

	userName, _ := c.Get(middleware.ContextUserNameKey)
	role, _ := c.Get(middleware.ContextRoleKey)

	sess := service.Session{UserID: userID}
	if name, ok := userName.(string); ok {
		sess.UserName = name
	}
	if r, ok := role.(string); ok {
		sess.Role = r
	}
	return sess, nil
}

// ParseIntIDParam читает числовой идентификатор из параметра пути.
func ParseIntIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("параметр %s должен быть положительным числом", paramName)
	}

	return id, nil
}

// ParseUUIDParam читает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("параметр %s должен быть валидным UUID", paramName)
	}

	return parsed, nil
}

// RespondError отправляет стандартный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError разворачивает ошибку сервисного слоя в HTTP ответ.
// Неизвестные ошибки маскируются и логируются через ErrorHandler.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		RespondError(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	_ = c.Error(err)
}

// RespondJSON отправляет JSON ответ.
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest отправляет 400.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery читает целочисленный query параметр с запасным значением.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetPagination извлекает limit и offset из query параметров.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = ParseIntQuery(c, "limit", 20)
	offset = ParseIntQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return
}
