package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category regroupe des publications ; une catégorie non publiée masque ses publications
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"size:64;uniqueIndex;not null"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Input structure du formulaire de création et d'édition (admin)
type Input struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description" binding:"required"`
	Slug        string `json:"slug" binding:"max=64,slug"`
	IsPublished *bool  `json:"is_published"`
}
