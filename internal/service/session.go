package service

import (
	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/models"
)

// Session — типизированная личность вызывающего, извлечённая из access
// токена. Анонимные вызовы до сервисов не доходят: их отсекает middleware.
type Session struct {
	UserID   uuid.UUID
	UserName string
	Role     string
}

// IsAdmin сообщает, является ли вызывающий администратором.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}
