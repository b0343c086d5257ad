package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cityvoice/cityvoice-backend/internal/logger"
	"github.com/cityvoice/cityvoice-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно: хэндлер может
// положить ошибку в c.Error() и не формировать ответ сам.
// Внутренние ошибки маскируются общим сообщением.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("ошибка обработки запроса")
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}
