package post

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/location"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/paging"
	"github.com/RolAlek/personal-blog/internal/storage"
)

// Scope filtre ou trie une requête sur la table posts
type Scope func(*gorm.DB) *gorm.DB

// List pagine les publications retenues par les scopes, avec auteur, catégorie, lieu et nombre de commentaires
func List(rawPage string, perPage int, scopes ...Scope) ([]Post, paging.Page, error) {
	q := database.DB.Model(&Post{})
	for _, scope := range scopes {
		q = scope(q)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, paging.Page{}, err
	}
	page := paging.New(total, perPage, rawPage)

	var posts []Post
	err := Ordered(WithCommentCount(q)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, paging.Page{}, err
	}
	return posts, page, nil
}

// FindPost charge une publication avec ses relations ; gorm.ErrRecordNotFound si absente
func FindPost(id string) (*Post, error) {
	var p Post
	err := WithCommentCount(database.DB.Model(&Post{})).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ResolveRefs vérifie que la catégorie et le lieu choisis existent.
// Les identifiants vides sont ramenés à nil.
func ResolveRefs(categoryID, locationID *string) (*string, *string, map[string]string, error) {
	fields := map[string]string{}

	categoryID = blankToNil(categoryID)
	if categoryID != nil {
		err := database.DB.Select("id").First(&category.Category{}, "id = ?", *categoryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fields["category_id"] = "Sélectionnez un choix valide."
		} else if err != nil {
			return nil, nil, nil, err
		}
	}

	locationID = blankToNil(locationID)
	if locationID != nil {
		err := database.DB.Select("id").First(&location.Location{}, "id = ?", *locationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fields["location_id"] = "Sélectionnez un choix valide."
		} else if err != nil {
			return nil, nil, nil, err
		}
	}

	return categoryID, locationID, fields, nil
}

func blankToNil(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// withImageURL remplace la clé d'image par une URL servable
func withImageURL(ctx context.Context, posts []Post) {
	for i := range posts {
		url, err := storage.ImageURL(ctx, posts[i].Image)
		if err != nil {
			logs.LogJSON("WARN", "Image URL signing failed", map[string]interface{}{
				"error":  err.Error(),
				"postID": posts[i].ID,
			})
			continue
		}
		posts[i].ImageURL = url
	}
}

func now() time.Time {
	return time.Now().UTC()
}
