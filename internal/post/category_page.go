package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
)

// GetCategoryPosts GET /api/categories/:category_slug
// Une catégorie non publiée n'existe pas, y compris pour son créateur.
func GetCategoryPosts(c *gin.Context) {
	var cat category.Category
	err := database.DB.First(&cat, "slug = ? AND is_published = ?", c.Param("category_slug"), true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération de la catégorie"})
		logs.LogJSON("ERROR", "Category lookup failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
			"slug":  c.Param("category_slug"),
		})
		return
	}

	posts, page, err := List(c.Query("page"), PostsPerPage, InCategory(cat.ID), Live(now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		return
	}

	withImageURL(c.Request.Context(), posts)
	c.JSON(http.StatusOK, gin.H{"category": cat, "posts": posts, "page": page})
}
