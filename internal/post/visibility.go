package post

import (
	"time"

	"gorm.io/gorm"
)

// Viewer est la personne qui consulte ; UserID vide pour un visiteur anonyme
type Viewer struct {
	UserID string
}

func (v Viewer) Anonymous() bool { return v.UserID == "" }

// Owns est vrai seulement pour un utilisateur connecté qui est l'auteur
func (v Viewer) Owns(authorID string) bool {
	return !v.Anonymous() && v.UserID == authorID
}

// IsLive : publiée, date de publication atteinte, et catégorie absente ou publiée.
// La catégorie doit être préchargée quand CategoryID est renseigné.
func IsLive(p *Post, now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	return p.CategoryID == nil || (p.Category != nil && p.Category.IsPublished)
}

// CanView : l'auteur voit ses brouillons et ses publications différées, les autres seulement le contenu en ligne
func CanView(p *Post, viewer Viewer, now time.Time) bool {
	return viewer.Owns(p.AuthorID) || IsLive(p, now)
}

// FilterVisible garde, dans l'ordre, les publications que viewer a le droit de voir.
// C'est la forme en mémoire de la règle que Live et AuthoredBy appliquent en SQL ;
// les catégories doivent être préchargées.
func FilterVisible(posts []Post, viewer Viewer, now time.Time) []Post {
	visible := make([]Post, 0, len(posts))
	for i := range posts {
		if CanView(&posts[i], viewer, now) {
			visible = append(visible, posts[i])
		}
	}
	return visible
}

// Live restreint une requête sur posts aux publications en ligne à l'instant now.
// Les deux indicateurs de publication sont relus à chaque requête.
func Live(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND posts.pub_date <= ?", true, now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

// AuthoredBy liste les publications d'un auteur telles que viewer peut les voir
func AuthoredBy(authorID string, viewer Viewer, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("posts.author_id = ?", authorID)
		if viewer.Owns(authorID) {
			return db
		}
		return Live(now)(db)
	}
}

func InCategory(categoryID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.category_id = ?", categoryID)
	}
}

// WithCommentCount ajoute comment_count ; tous les commentaires comptent
func WithCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

// Ordered : plus récentes d'abord, puis par titre pour une pagination stable
func Ordered(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC").Order("posts.title ASC")
}
