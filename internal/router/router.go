package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/RolAlek/personal-blog/internal/admin"
	"github.com/RolAlek/personal-blog/internal/auth"
	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/config"
	"github.com/RolAlek/personal-blog/internal/location"
	"github.com/RolAlek/personal-blog/internal/middleware"
	"github.com/RolAlek/personal-blog/internal/post"
	"github.com/RolAlek/personal-blog/internal/user"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// Models liste les tables gérées par l'application, dans l'ordre de migration
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&category.Category{},
		&location.Location{},
		&post.Post{},
		&post.Comment{},
	}
}

// SetupRouter assemble toutes les routes de l'API
func SetupRouter(cfg *config.Config) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger(), middleware.RecoveryMiddleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTSecret)
	authHandler := auth.NewHandler(cfg.JWTSecret, cfg.JWTTTL)

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)

	// Lecture publique
	api.GET("/posts", post.GetPosts)
	api.GET("/posts/:post_id", optionalAuth, post.GetPostByID)
	api.GET("/categories/:category_slug", post.GetCategoryPosts)
	api.GET("/users/:username", optionalAuth, post.GetProfile)

	// Utilisateur connecté
	authed := api.Group("", requireAuth)
	authed.GET("/profile", user.GetMe)
	authed.PATCH("/profile", user.UpdateMe)

	authed.POST("/posts", post.CreatePost)
	authed.GET("/posts/:post_id/edit", post.EditPost)
	authed.PATCH("/posts/:post_id", post.UpdatePost)
	authed.DELETE("/posts/:post_id", post.DeletePost)

	authed.POST("/posts/:post_id/comments", post.CreateComment)
	authed.GET("/posts/:post_id/comments/:comment_id/edit", post.EditComment)
	authed.PATCH("/posts/:post_id/comments/:comment_id", post.UpdateComment)
	authed.DELETE("/posts/:post_id/comments/:comment_id", post.DeleteComment)

	// Administration
	adminGroup := api.Group("/admin", requireAuth, middleware.AdminOnlyMiddleware())
	adminGroup.GET("/stats", admin.GetDashboardStats)
	adminGroup.GET("/top-authors", admin.GetTopAuthors)
	adminGroup.GET("/posts", admin.ListPosts)
	adminGroup.PATCH("/posts/:post_id", admin.ModeratePost)

	adminGroup.GET("/categories", category.ListCategories)
	adminGroup.POST("/categories", category.CreateCategory)
	adminGroup.PATCH("/categories/:id", category.UpdateCategory)
	adminGroup.DELETE("/categories/:id", category.DeleteCategory)

	adminGroup.GET("/locations", location.ListLocations)
	adminGroup.POST("/locations", location.CreateLocation)
	adminGroup.PATCH("/locations/:id", location.UpdateLocation)
	adminGroup.DELETE("/locations/:id", location.DeleteLocation)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
