// internal/admin/handler.go
package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/post"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// AdminPostsPerPage taille de page de la liste de modération
const AdminPostsPerPage = 20

// GetDashboardStats GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	startDate, endDate, ok := parseDateRange(c)
	if !ok {
		return
	}
	now := time.Now().UTC()

	var totalUsers, totalPosts, livePosts, scheduledPosts, draftPosts int64
	var totalComments, totalCategories, hiddenCategories, totalLocations, postsInRange int64

	database.DB.Table("users").Count(&totalUsers)
	database.DB.Table("posts").Count(&totalPosts)
	database.DB.Model(&post.Post{}).Scopes(post.Live(now)).Count(&livePosts)

	// Publiées mais dont la date n'est pas encore atteinte
	database.DB.Table("posts").Where("is_published = ? AND pub_date > ?", true, now).Count(&scheduledPosts)
	database.DB.Table("posts").Where("is_published = ?", false).Count(&draftPosts)

	database.DB.Table("comments").Count(&totalComments)
	database.DB.Table("categories").Count(&totalCategories)
	database.DB.Table("categories").Where("is_published = ?", false).Count(&hiddenCategories)
	database.DB.Table("locations").Count(&totalLocations)

	database.DB.Table("posts").
		Where("created_at >= ? AND created_at < ?", startDate, endDate.AddDate(0, 0, 1)).
		Count(&postsInRange)

	stats := gin.H{
		"total_users":       totalUsers,
		"total_posts":       totalPosts,
		"live_posts":        livePosts,
		"scheduled_posts":   scheduledPosts,
		"draft_posts":       draftPosts,
		"total_comments":    totalComments,
		"total_categories":  totalCategories,
		"hidden_categories": hiddenCategories,
		"total_locations":   totalLocations,
		"posts_in_range":    postsInRange,
		"date_range": gin.H{
			"start": startDate.Format("2006-01-02"),
			"end":   endDate.Format("2006-01-02"),
		},
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetTopAuthors GET /api/admin/top-authors
func GetTopAuthors(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var topByPosts []struct {
		AuthorID  string `json:"author_id"`
		Username  string `json:"username"`
		PostCount int64  `json:"post_count"`
	}
	database.DB.Table("posts").
		Select("posts.author_id, users.username, COUNT(posts.id) as post_count").
		Joins("LEFT JOIN users ON posts.author_id = users.id").
		Group("posts.author_id, users.username").
		Order("post_count DESC").
		Limit(limit).
		Scan(&topByPosts)

	// Commentaires reçus sur les publications de chaque auteur
	var topByComments []struct {
		AuthorID     string `json:"author_id"`
		Username     string `json:"username"`
		CommentCount int64  `json:"comment_count"`
	}
	database.DB.Table("comments").
		Select("posts.author_id, users.username, COUNT(comments.id) as comment_count").
		Joins("JOIN posts ON comments.post_id = posts.id").
		Joins("LEFT JOIN users ON posts.author_id = users.id").
		Group("posts.author_id, users.username").
		Order("comment_count DESC").
		Limit(limit).
		Scan(&topByComments)

	c.JSON(http.StatusOK, gin.H{
		"top_by_posts":    topByPosts,
		"top_by_comments": topByComments,
	})
}

// ListPosts GET /api/admin/posts
// Toutes les publications, quel que soit leur état ; recherche par titre, filtre par catégorie et lieu.
func ListPosts(c *gin.Context) {
	var scopes []post.Scope
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(posts.title) LIKE ?", pattern)
		})
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		scopes = append(scopes, post.InCategory(categoryID))
	}
	if locationID := c.Query("location_id"); locationID != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("posts.location_id = ?", locationID)
		})
	}

	posts, page, err := post.List(c.Query("page"), AdminPostsPerPage, scopes...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		logs.LogJSON("ERROR", "Admin post listing failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

// ModerationInput champs éditables directement depuis la liste d'administration
type ModerationInput struct {
	IsPublished *bool   `json:"is_published"`
	CategoryID  *string `json:"category_id"`
	LocationID  *string `json:"location_id"`
}

// ModeratePost PATCH /api/admin/posts/:post_id
// Les administrateurs ne passent pas par le contrôle de propriété.
func ModeratePost(c *gin.Context) {
	var p post.Post
	if err := database.DB.First(&p, "id = ?", c.Param("post_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
			logs.LogJSON("ERROR", "Post lookup failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  c.FullPath(),
				"userID": c.GetString("user_id"),
			})
		}
		return
	}

	var input ModerationInput
	if !utils.BindForm(c, &input) {
		return
	}

	categoryID, locationID, fields, err := post.ResolveRefs(input.CategoryID, input.LocationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du formulaire"})
		return
	}
	if len(fields) > 0 {
		utils.FormError(c, fields)
		return
	}

	updates := map[string]interface{}{}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}
	// Un identifiant vide retire la catégorie ou le lieu
	if input.CategoryID != nil {
		updates["category_id"] = nullable(categoryID)
	}
	if input.LocationID != nil {
		updates["location_id"] = nullable(locationID)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&p).Omit(clause.Associations).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du post"})
			return
		}
	}

	updated, err := post.FindPost(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": updated})
	logs.LogJSON("INFO", "Post moderated", map[string]interface{}{
		"postID":  p.ID,
		"route":   c.FullPath(),
		"userID":  c.GetString("user_id"),
		"changes": updates,
	})
}

// parseDateRange lit start_date et end_date (AAAA-MM-JJ), 30 derniers jours par défaut
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -30)

	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Format de date invalide pour start_date"})
			return time.Time{}, time.Time{}, false
		}
		startDate = parsed
	}
	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Format de date invalide pour end_date"})
			return time.Time{}, time.Time{}, false
		}
		endDate = parsed
	}
	return startDate, endDate, true
}

func nullable(id *string) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
