package location

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// ListLocations GET /api/admin/locations
func ListLocations(c *gin.Context) {
	var locations []Location
	if err := database.DB.Order("name ASC").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des lieux"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CreateLocation POST /api/admin/locations
func CreateLocation(c *gin.Context) {
	var input Input
	if !utils.BindForm(c, &input) {
		return
	}

	loc := Location{Name: input.Name, IsPublished: true}
	if input.IsPublished != nil {
		loc.IsPublished = *input.IsPublished
	}

	if err := database.DB.Create(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du lieu"})
		logs.LogJSON("ERROR", "Location create failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": loc})
}

// UpdateLocation PATCH /api/admin/locations/:id
func UpdateLocation(c *gin.Context) {
	var loc Location
	if err := database.DB.First(&loc, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lieu non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du lieu"})
			logs.LogJSON("ERROR", "Location lookup failed", map[string]interface{}{
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

	loc.Name = input.Name
	if input.IsPublished != nil {
		loc.IsPublished = *input.IsPublished
	}

	if err := database.DB.Save(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du lieu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": loc})
}

// DeleteLocation DELETE /api/admin/locations/:id
func DeleteLocation(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var loc Location
		if err := tx.First(&loc, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Table("posts").Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&loc).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lieu non trouvé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du lieu"})
		logs.LogJSON("ERROR", "Location delete failed", map[string]interface{}{
			"error":      err.Error(),
			"locationID": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lieu supprimé avec succès"})
}
