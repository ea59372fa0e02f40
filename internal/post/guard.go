package post

// Owned est une ressource modifiable uniquement par son auteur
type Owned interface {
	OwnerID() string
	DetailPath() string
}

// Decision résultat du contrôle de propriété.
// Un refus n'est pas une erreur : on redirige vers la page de détail.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Authorize s'appelle en tête de chaque handler d'édition ou de suppression,
// avant toute lecture du formulaire et toute écriture.
func Authorize(resource Owned, actorID string) Decision {
	if actorID != "" && resource.OwnerID() == actorID {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: resource.DetailPath()}
}
