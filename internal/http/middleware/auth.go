package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/models"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey   = "userID"
	ContextUserNameKey = "userName"
	ContextRoleKey     = "role"
)

// AuthMiddleware проверяет JWT access токен и кладёт личность
// вызывающего в контекст запроса.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		userID, userName, role, err := tokens.ParseAccess(raw)
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserNameKey, userName)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// AdminMiddleware пропускает только администраторов. Вешается после
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRoleKey)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "недостаточно прав"})
			return
		}
		c.Next()
	}
}
