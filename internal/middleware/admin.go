package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth valida el header Admin-Key. Sin clave configurada rechaza todo.
func AdminAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminKey := c.GetHeader("Admin-Key")
		if secretKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(secretKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Acceso no autorizado"})
			c.Abort()
			return
		}
		c.Next()
	}
}
