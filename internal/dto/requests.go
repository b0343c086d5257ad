package dto

import "time"

// RegisterRequest — запрос регистрации.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// LoginRequest — запрос входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — запрос обновления пары токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateReportRequest — запрос создания обращения.
type CreateReportRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Location    *string    `json:"location"`
	PhotoID     *string    `json:"photo_id"`
	Date        *time.Time `json:"date"`
}

// UpdateReportRequest — частичное обновление обращения.
// Отсутствующие поля не трогаются.
type UpdateReportRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	PhotoID     *string    `json:"photo_id"`
	Date        *time.Time `json:"date"`
}

// UpdateReportStatusRequest — смена статуса обращения.
type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateCommentRequest — запрос добавления комментария.
type CreateCommentRequest struct {
	Text    string  `json:"text" binding:"required"`
	ReplyTo *string `json:"reply_to"`
}
