package user

import (
	"github.com/RolAlek/personal-blog/internal/database"
)

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// TakenByOther vérifie si la valeur d'une colonne unique appartient déjà à un autre utilisateur
func TakenByOther(column, value, userID string) bool {
	var count int64
	database.DB.Model(&User{}).Where(column+" = ? AND id <> ?", value, userID).Count(&count)
	return count > 0
}

func FindByUsername(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
