package model

import "time"

// Activity représente une activité proposée dans un groupe.
// Cycle de vie : proposée (SelectedForDate nil) → sélectionnée pour un
// jour précis (SelectedForDate posé une seule fois, jamais modifié) →
// complétée quand tous les membres ont soumis. Jamais de retour en arrière.
type Activity struct {
	ID              string     `json:"id"`
	GroupID         string     `json:"groupId"`
	CreatedBy       string     `json:"createdBy"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Emoji           string     `json:"emoji,omitempty"`
	Difficulty      string     `json:"difficulty,omitempty"` // easy, medium, hard
	CreatedAt       time.Time  `json:"createdAt"`
	SelectedForDate *time.Time `json:"selectedForDate"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	IsCompleted     bool       `json:"isCompleted"`
}

// IsPending indique si l'activité n'a pas encore été tirée au sort
func (a *Activity) IsPending() bool {
	return a.SelectedForDate == nil
}

// ActivityView décore une activité pour les vues "challenges"
type ActivityView struct {
	Activity
	IsToday   bool       `json:"isToday,omitempty"`
	Completed bool       `json:"completed,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}
