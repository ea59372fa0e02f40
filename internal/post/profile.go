package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/user"
)

// GetProfile GET /api/users/:username
// L'auteur connecté voit toutes ses publications, les autres uniquement celles en ligne.
func GetProfile(c *gin.Context) {
	username := c.Param("username")
	viewer := viewerFrom(c)

	u, err := user.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de récupération de l'utilisateur"})
		}
		return
	}

	posts, page, err := List(c.Query("page"), PostsPerPage, AuthoredBy(u.ID, viewer, now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de récupération des posts"})
		logs.LogJSON("ERROR", "Profile posts query failed", map[string]interface{}{
			"error":    err.Error(),
			"username": username,
			"userID":   viewer.UserID,
		})
		return
	}

	withImageURL(c.Request.Context(), posts)
	c.JSON(http.StatusOK, gin.H{
		"profile":  u,
		"is_owner": viewer.Owns(u.ID),
		"posts":    posts,
		"page":     page,
	})
}
