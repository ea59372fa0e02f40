// Package paging découpe une liste en pages de taille fixe.
// Un numéro de page hors limites est ramené à la page valide la plus proche.
package paging

import (
	"strconv"
	"strings"
)

type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	PerPage     int   `json:"per_page"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// New calcule la page demandée à partir du nombre total d'éléments.
// Une valeur non numérique donne la première page.
func New(count int64, perPage int, rawPage string) Page {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}

	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1 // une liste vide a quand même une page
	}

	number, err := strconv.Atoi(strings.TrimSpace(rawPage))
	switch {
	case err != nil, number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PerPage:     perPage,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}
