package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// CreateComment POST /api/posts/:post_id/comments
func CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := FindPost(c.Param("post_id"))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
		logs.LogJSON("ERROR", "Post lookup failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": userID,
		})
		return
	}
	if err != nil || !CanView(p, viewerFrom(c), now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	var input CommentInput
	if !utils.BindForm(c, &input) {
		return
	}

	comment := Comment{
		PostID:   p.ID,
		AuthorID: userID,
		Text:     input.Text,
	}

	if err := database.DB.Omit(clause.Associations).Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du commentaire"})
		logs.LogJSON("ERROR", "Comment create failed", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commentaire ajouté avec succès",
		"comment": comment,
	})
}

// EditComment GET /api/posts/:post_id/comments/:comment_id/edit
func EditComment(c *gin.Context) {
	comment, ok := loadComment(c)
	if !ok || !guard(c, comment) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// UpdateComment PATCH /api/posts/:post_id/comments/:comment_id
func UpdateComment(c *gin.Context) {
	comment, ok := loadComment(c)
	if !ok || !guard(c, comment) {
		return
	}

	var input CommentInput
	if !utils.BindForm(c, &input) {
		return
	}
	comment.Text = input.Text

	if err := database.DB.Omit(clause.Associations).Save(comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du commentaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment DELETE /api/posts/:post_id/comments/:comment_id
func DeleteComment(c *gin.Context) {
	comment, ok := loadComment(c)
	if !ok || !guard(c, comment) {
		return
	}

	if err := database.DB.Delete(comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du commentaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Commentaire supprimé avec succès",
		"redirect": comment.DetailPath(),
	})
}

func loadComment(c *gin.Context) (*Comment, bool) {
	var comment Comment
	err := database.DB.First(&comment, "id = ? AND post_id = ?", c.Param("comment_id"), c.Param("post_id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commentaire non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du commentaire"})
			logs.LogJSON("ERROR", "Comment lookup failed", map[string]interface{}{
				"error": err.Error(),
				"route": c.FullPath(),
			})
		}
		return nil, false
	}
	return &comment, true
}
