// Package testutil monte une base SQLite en mémoire et le routeur complet pour les tests de handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/config"
	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/location"
	"github.com/RolAlek/personal-blog/internal/post"
	"github.com/RolAlek/personal-blog/internal/router"
	"github.com/RolAlek/personal-blog/internal/user"
	"github.com/RolAlek/personal-blog/internal/utils"
)

const Secret = "test-secret"

// Setup remplace database.DB par une base vide et renvoie le routeur de l'application
func Setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	original := database.DB
	require.NoError(t, database.Connect("sqlite", ":memory:"))
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	// une base :memory: n'existe que sur sa connexion
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(router.Models()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
		database.DB = original
	})

	return router.SetupRouter(&config.Config{JWTSecret: Secret, JWTTTL: time.Hour})
}

// CloseDB ferme la connexion courante : les requêtes suivantes échouent
func CloseDB(t *testing.T) {
	t.Helper()
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func CreateUser(t *testing.T, username string, isAdmin bool) *user.User {
	t.Helper()
	u := &user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, database.DB.Create(u).Error)
	return u
}

func Token(t *testing.T, u *user.User) string {
	t.Helper()
	token, err := utils.GenerateToken(u.ID, Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func CreateCategory(t *testing.T, slug string, published bool) *category.Category {
	t.Helper()
	c := &category.Category{Title: slug, Description: "about " + slug, Slug: slug, IsPublished: published}
	require.NoError(t, database.DB.Create(c).Error)
	return c
}

func CreateLocation(t *testing.T, name string, published bool) *location.Location {
	t.Helper()
	l := &location.Location{Name: name, IsPublished: published}
	require.NoError(t, database.DB.Create(l).Error)
	return l
}

// PostSpec décrit une publication de test
type PostSpec struct {
	Title     string
	Author    *user.User
	Published bool
	PubDate   time.Time
	Category  *category.Category
	Location  *location.Location
}

func CreatePost(t *testing.T, spec PostSpec) *post.Post {
	t.Helper()
	p := &post.Post{
		Title:       spec.Title,
		Text:        "text of " + spec.Title,
		PubDate:     spec.PubDate.UTC(),
		IsPublished: spec.Published,
		AuthorID:    spec.Author.ID,
	}
	if spec.Category != nil {
		p.CategoryID = &spec.Category.ID
	}
	if spec.Location != nil {
		p.LocationID = &spec.Location.ID
	}
	require.NoError(t, database.DB.Omit(clause.Associations).Create(p).Error)
	return p
}

func CreateComment(t *testing.T, p *post.Post, author *user.User, text string) *post.Comment {
	t.Helper()
	c := &post.Comment{PostID: p.ID, AuthorID: author.ID, Text: text}
	require.NoError(t, database.DB.Omit(clause.Associations).Create(c).Error)
	return c
}

// Do exécute une requête ; body est encodé en JSON s'il n'est pas nil
func Do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
