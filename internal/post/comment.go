package post

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/user"
)

// Comment appartient à une publication et disparaît avec elle
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index;not null"`
	Author    user.User `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Comment) OwnerID() string { return c.AuthorID }

// DetailPath renvoie vers la publication parente
func (c *Comment) DetailPath() string { return "/api/posts/" + c.PostID }

type CommentInput struct {
	Text string `json:"text" binding:"required"`
}
