package utils

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	registerOnce sync.Once
)

// RegisterValidators branche sur le validateur de gin les noms de champs JSON et la règle "slug"
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || slugPattern.MatchString(s)
		})
	})
}

// FieldErrors traduit les erreurs du validateur en messages par champ.
// Renvoie nil si err n'est pas une erreur de validation (JSON mal formé par exemple).
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire."
	case "max":
		return "Ce champ ne doit pas dépasser " + fe.Param() + " caractères."
	case "min":
		return "Ce champ doit contenir au moins " + fe.Param() + " caractères."
	case "email":
		return "Saisissez une adresse e-mail valide."
	case "slug":
		return "Seuls les lettres latines, chiffres, tirets et soulignés sont autorisés."
	default:
		return "Valeur invalide."
	}
}

// BindForm lie le corps JSON et répond 400 avec les erreurs par champ en cas d'échec.
// Renvoie false si la requête a déjà reçu sa réponse.
func BindForm(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if fields := FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire invalide", "fields": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
	return false
}

// FormError répond 400 pour des erreurs détectées après la validation des tags
func FormError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire invalide", "fields": fields})
}
