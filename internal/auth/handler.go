package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/logs"
	"github.com/RolAlek/personal-blog/internal/user"
	"github.com/RolAlek/personal-blog/internal/utils"
)

type signupInput struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Firstname string `json:"firstname" binding:"max=150"`
	Lastname  string `json:"lastname" binding:"max=150"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler émet les tokens avec le secret de l'application
type Handler struct {
	Secret string
	TTL    time.Duration
}

func NewHandler(secret string, ttl time.Duration) *Handler {
	return &Handler{Secret: secret, TTL: ttl}
}

// Signup POST /api/signup
func (h *Handler) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if fields := utils.FieldErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	// Vérification que email et username n'existent pas
	if user.ExistsByEmail(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email déjà utilisé"})
		return
	}
	if user.ExistsByUsername(input.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Nom d'utilisateur déjà utilisé"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chiffrement du mot de passe"})
		return
	}

	newUser := user.User{
		Username:     input.Username,
		Email:        input.Email,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		PasswordHash: string(hash),
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur insertion base utilisateurs"})
		logs.LogJSON("ERROR", "User insert failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	token, err := utils.GenerateToken(newUser.ID, h.Secret, h.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Utilisateur inscrit",
		"user":         user.PrivateView(&newUser),
		"access_token": token,
	})
	logs.LogJSON("INFO", "User signed up", map[string]interface{}{
		"userID": newUser.ID,
	})
}

// Login POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	u, err := user.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de récupération de l'utilisateur"})
		logs.LogJSON("ERROR", "User lookup failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		logs.LogJSON("WARN", "Failed login attempt", map[string]interface{}{
			"username": input.Username,
		})
		return
	}

	token, err := utils.GenerateToken(u.ID, h.Secret, h.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int64(h.TTL.Seconds()),
	})
}
