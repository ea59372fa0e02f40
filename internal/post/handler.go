package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/storage"
	"github.com/RolAlek/personal-blog/internal/utils"
)

func viewerFrom(c *gin.Context) Viewer {
	return Viewer{UserID: c.GetString("user_id")}
}

// GetPosts GET /api/posts
func GetPosts(c *gin.Context) {
	posts, page, err := List(c.Query("page"), PostsPerPage, Live(now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		logs.LogJSON("ERROR", "Feed query failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	withImageURL(c.Request.Context(), posts)
	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

// GetPostByID GET /api/posts/:post_id
// Un brouillon, une publication différée ou une catégorie masquée ne sont visibles que par l'auteur.
func GetPostByID(c *gin.Context) {
	p, err := FindPost(c.Param("post_id"))
	if err != nil || !CanView(p, viewerFrom(c), now()) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
			logs.LogJSON("ERROR", "Post lookup failed", map[string]interface{}{
				"error": err.Error(),
				"route": c.FullPath(),
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	var comments []Comment
	if err := database.DB.Preload("Author").Where("post_id = ?", p.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des commentaires"})
		return
	}

	single := []Post{*p}
	withImageURL(c.Request.Context(), single)
	c.JSON(http.StatusOK, gin.H{"post": single[0], "comments": comments})
}

// CreatePost POST /api/posts
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input Input
	if !utils.BindForm(c, &input) {
		return
	}

	newPost := Post{AuthorID: userID, IsPublished: true}
	if !applyInput(c, &newPost, input) {
		return
	}

	if err := database.DB.Omit(clause.Associations).Create(&newPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogJSON("ERROR", "Post create failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	respondWithPost(c, http.StatusCreated, newPost.ID)
	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"postID": newPost.ID,
		"route":  route,
		"userID": userID,
	})
}

// EditPost GET /api/posts/:post_id/edit
// Renvoie l'état du formulaire d'édition, à l'auteur uniquement.
func EditPost(c *gin.Context) {
	p, ok := loadPost(c)
	if !ok || !guard(c, p) {
		return
	}
	respondWithPost(c, http.StatusOK, p.ID)
}

// UpdatePost PATCH /api/posts/:post_id
func UpdatePost(c *gin.Context) {
	p, ok := loadPost(c)
	if !ok || !guard(c, p) {
		return
	}

	var input Input
	if !utils.BindForm(c, &input) {
		return
	}
	previousImage := p.Image
	if !applyInput(c, p, input) {
		return
	}

	if err := database.DB.Omit(clause.Associations).Save(p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du post"})
		logs.LogJSON("ERROR", "Post update failed", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
			"userID": c.GetString("user_id"),
		})
		return
	}

	if err := storage.ReplaceObject(c.Request.Context(), previousImage, p.Image); err != nil {
		logs.LogJSON("WARN", "Image cleanup failed", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
		})
	}

	respondWithPost(c, http.StatusOK, p.ID)
}

// DeletePost DELETE /api/posts/:post_id
// Les commentaires sont supprimés avec la publication.
func DeletePost(c *gin.Context) {
	p, ok := loadPost(c)
	if !ok || !guard(c, p) {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du post"})
		logs.LogJSON("ERROR", "Post delete failed", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
		})
		return
	}

	// La base fait foi : une image orpheline n'empêche pas la suppression
	if err := storage.DeleteObject(c.Request.Context(), p.Image); err != nil {
		logs.LogJSON("WARN", "Image cleanup failed", map[string]interface{}{
			"error":  err.Error(),
			"postID": p.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post supprimé avec succès"})
}

// loadPost charge la publication de l'URL sans ses relations, ou répond 404
func loadPost(c *gin.Context) (*Post, bool) {
	var p Post
	if err := database.DB.First(&p, "id = ?", c.Param("post_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
			logs.LogJSON("ERROR", "Post lookup failed", map[string]interface{}{
				"error": err.Error(),
				"route": c.FullPath(),
			})
		}
		return nil, false
	}
	return &p, true
}

// guard applique Authorize ; en cas de refus la requête est redirigée vers la page de détail
func guard(c *gin.Context, resource Owned) bool {
	d := Authorize(resource, c.GetString("user_id"))
	if d.Allowed {
		return true
	}

	logs.LogJSON("WARN", "Non-author tried to modify a resource", map[string]interface{}{
		"route":    c.FullPath(),
		"userID":   c.GetString("user_id"),
		"redirect": d.RedirectTo,
	})
	c.Redirect(http.StatusFound, d.RedirectTo)
	c.Abort()
	return false
}

// applyInput recopie le formulaire dans p ; répond 400 si une référence est invalide
func applyInput(c *gin.Context, p *Post, input Input) bool {
	categoryID, locationID, fields, err := ResolveRefs(input.CategoryID, input.LocationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du formulaire"})
		return false
	}
	if len(fields) > 0 {
		utils.FormError(c, fields)
		return false
	}

	p.Title = input.Title
	p.Text = input.Text
	p.PubDate = input.PubDate.UTC()
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}
	p.CategoryID = categoryID
	p.Category = nil
	p.LocationID = locationID
	p.Location = nil
	p.Image = input.Image
	return true
}

func respondWithPost(c *gin.Context, status int, id string) {
	p, err := FindPost(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
		return
	}
	single := []Post{*p}
	withImageURL(c.Request.Context(), single)
	c.JSON(status, gin.H{"post": single[0]})
}
