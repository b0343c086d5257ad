package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDValidator проверяет, что параметр пути — положительное целое число.
// Использование: router.GET("/reports/:id", IDValidator("id"), handler.GetReport)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть положительным числом",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
