package category

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// ListCategories GET /api/admin/categories
func ListCategories(c *gin.Context) {
	var categories []Category
	if err := database.DB.Order("title ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var input Input
	if !utils.BindForm(c, &input) {
		return
	}

	cat := Category{IsPublished: true}
	if !applyInput(c, &cat, input) {
		return
	}

	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la catégorie"})
		logs.LogJSON("ERROR", "Category create failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// UpdateCategory PATCH /api/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	var cat Category
	if err := database.DB.First(&cat, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération de la catégorie"})
			logs.LogJSON("ERROR", "Category lookup failed", map[string]interface{}{
				"error": err.Error(),
				"route": c.FullPath(),
			})
		}
		return
	}

	var input Input
	if !utils.BindForm(c, &input) {
		return
	}
	if !applyInput(c, &cat, input) {
		return
	}

	if err := database.DB.Save(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour de la catégorie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// DeleteCategory DELETE /api/admin/categories/:id
// Les publications de la catégorie sont conservées, sans catégorie.
func DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var cat Category
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Table("posts").Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression de la catégorie"})
		logs.LogJSON("ERROR", "Category delete failed", map[string]interface{}{
			"error":      err.Error(),
			"categoryID": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}

// applyInput recopie le formulaire dans cat et vérifie l'unicité du slug
func applyInput(c *gin.Context, cat *Category, input Input) bool {
	s := input.Slug
	if s == "" {
		derived, err := UniqueSlug(input.Title, cat.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération du slug"})
			return false
		}
		if derived == "" {
			utils.FormError(c, map[string]string{"slug": "Impossible de dériver un identifiant depuis le titre."})
			return false
		}
		s = derived
	} else {
		taken, err := SlugTaken(s, cat.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du slug"})
			return false
		}
		if taken {
			utils.FormError(c, map[string]string{"slug": "Une catégorie avec cet identifiant existe déjà."})
			return false
		}
	}

	cat.Title = input.Title
	cat.Description = input.Description
	cat.Slug = s
	if input.IsPublished != nil {
		cat.IsPublished = *input.IsPublished
	}
	return true
}
