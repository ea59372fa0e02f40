package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/utils"
)

// ProfileInput correspond au formulaire d'édition du profil
type ProfileInput struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Firstname string `json:"firstname" binding:"max=150"`
	Lastname  string `json:"lastname" binding:"max=150"`
}

// PrivateView expose les champs visibles uniquement par le propriétaire du compte
func PrivateView(u *User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"firstname":  u.Firstname,
		"lastname":   u.Lastname,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt,
	}
}

// GetMe GET /api/profile
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	u, ok := loadUser(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": PrivateView(u)})
}

// UpdateMe PATCH /api/profile
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	u, ok := loadUser(c, userID)
	if !ok {
		return
	}

	var input ProfileInput
	if !utils.BindForm(c, &input) {
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	fields := map[string]string{}
	if TakenByOther("username", input.Username, u.ID) {
		fields["username"] = "Ce nom d'utilisateur est déjà pris."
	}
	if TakenByOther("email", input.Email, u.ID) {
		fields["email"] = "Cette adresse e-mail est déjà utilisée."
	}
	if len(fields) > 0 {
		utils.FormError(c, fields)
		return
	}

	u.Username = input.Username
	u.Email = input.Email
	u.Firstname = input.Firstname
	u.Lastname = input.Lastname

	if err := database.DB.Save(u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		logs.LogJSON("ERROR", "User update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": PrivateView(u)})
	logs.LogJSON("INFO", "Profile updated", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

func loadUser(c *gin.Context, userID string) (*User, bool) {
	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de récupération de l'utilisateur"})
			logs.LogJSON("ERROR", "User lookup failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  c.FullPath(),
				"userID": userID,
			})
		}
		return nil, false
	}
	return &u, true
}
