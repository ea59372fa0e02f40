package user

import (
	"errors"

	"github.com/RolAlek/personal-blog/internal/database"
	"gorm.io/gorm"
)

// IsAdmin vérifie si un utilisateur est admin à partir de son ID
func IsAdmin(userID string) (bool, error) {
	var u User
	err := database.DB.Select("is_admin").Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // utilisateur introuvable, donc pas admin
		}
		return false, err
	}
	return u.IsAdmin, nil
}
