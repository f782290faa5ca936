package model

import "time"

// Types de notification
const (
	NotificationTypeChallenge  = "challenge"
	NotificationTypeGroup      = "group"
	NotificationTypeSubmission = "submission"
	NotificationTypeVote       = "vote"
	NotificationTypeSystem     = "system"
)

// Notification est un message persisté pour un utilisateur.
// L'écriture est fire-and-forget : un échec n'interrompt jamais
// l'opération qui l'a déclenchée.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
	Type      string    `json:"type"`
	Link      string    `json:"link,omitempty"`
}
