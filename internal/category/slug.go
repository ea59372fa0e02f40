package category

import (
	"fmt"

	"github.com/gosimple/slug"

	"github.com/RolAlek/personal-blog/internal/database"
)

const maxSlugLen = 64

// SlugTaken vérifie si le slug appartient déjà à une autre catégorie
func SlugTaken(s, excludeID string) (bool, error) {
	var count int64
	q := database.DB.Model(&Category{}).Where("slug = ?", s)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UniqueSlug dérive un slug du titre et le suffixe (-2, -3...) jusqu'à ce qu'il soit libre
func UniqueSlug(title, excludeID string) (string, error) {
	base := slug.Make(title)
	if len(base) > maxSlugLen-4 {
		base = base[:maxSlugLen-4]
	}
	if base == "" {
		return "", nil
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := SlugTaken(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
