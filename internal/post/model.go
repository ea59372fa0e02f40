package post

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/location"
	"github.com/RolAlek/personal-blog/internal/user"
)

// PostsPerPage taille fixe des pages de publications
const PostsPerPage = 10

type Post struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	PubDate     time.Time `json:"pub_date" gorm:"index;not null"` // dans le futur = publication différée
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`

	AuthorID   string             `json:"author_id" gorm:"type:varchar(36);index;not null"`
	Author     user.User          `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CategoryID *string            `json:"category_id" gorm:"type:varchar(36);index"`
	Category   *category.Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	LocationID *string            `json:"location_id" gorm:"type:varchar(36);index"`
	Location   *location.Location `json:"location,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Image      string             `json:"image"`
	ImageURL   string             `json:"image_url,omitempty" gorm:"-"`

	Comments     []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CommentCount int64     `json:"comment_count" gorm:"->;-:migration"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Post) OwnerID() string { return p.AuthorID }

func (p *Post) DetailPath() string { return "/api/posts/" + p.ID }

// Input formulaire de création et d'édition d'une publication
type Input struct {
	Title       string     `json:"title" binding:"required,max=256"`
	Text        string     `json:"text" binding:"required"`
	PubDate     *time.Time `json:"pub_date" binding:"required"`
	IsPublished *bool      `json:"is_published"`
	CategoryID  *string    `json:"category_id"`
	LocationID  *string    `json:"location_id"`
	Image       string     `json:"image" binding:"max=255"`
}
