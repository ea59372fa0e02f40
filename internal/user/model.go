package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"-" gorm:"size:254;uniqueIndex;not null"`
	Firstname    string    `json:"firstname" gorm:"size:150"`
	Lastname     string    `json:"lastname" gorm:"size:150"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsAdmin      bool      `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
