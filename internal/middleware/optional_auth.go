package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/RolAlek/personal-blog/internal/utils"
)

// OptionalAuthMiddleware renseigne user_id si un token valide est présent, sans jamais bloquer
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if userID, err := utils.ParseToken(tokenStr, secret); err == nil {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
