package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RolAlek/personal-blog/internal/logs"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logs.LogJSON("ERROR", "Panic during request", map[string]interface{}{
			"error":  fmt.Sprint(recovered),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne du serveur"})
	})
}
