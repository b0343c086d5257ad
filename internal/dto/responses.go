package dto

import (
	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// ErrorResponse — стандартный формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — стандартный формат успешного ответа с сообщением.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse — ответ на регистрацию и вход.
type AuthResponse struct {
	User   *models.User       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// Pagination описывает страницу выборки.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PaginatedReportsResponse — страница обращений.
type PaginatedReportsResponse struct {
	Reports    []models.Report `json:"reports"`
	Pagination Pagination      `json:"pagination"`
}
