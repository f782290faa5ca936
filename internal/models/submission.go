package model

import "time"

// GeoPoint est une position optionnelle attachée à une soumission
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Submission représente la preuve photo d'un membre pour une activité.
// Au plus une soumission par couple (activité, utilisateur).
// Votes est un ensemble d'ids utilisateur (toggle, jamais dupliqué).
// Reactions associe un emoji à l'ensemble des utilisateurs qui ont réagi ;
// une clé emoji n'est jamais conservée avec un ensemble vide.
type Submission struct {
	ID          string              `json:"id"`
	ActivityID  string              `json:"activityId"`
	UserID      string              `json:"userId"`
	PhotoURL    string              `json:"photoUrl"`
	Caption     string              `json:"caption,omitempty"`
	Location    *GeoPoint           `json:"location,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
	Votes       []string            `json:"votes"`
	Reactions   map[string][]string `json:"reactions,omitempty"`
	IsFeatured  bool                `json:"isFeatured"`
}

// HasVote indique si l'utilisateur a déjà voté pour cette soumission
func (s *Submission) HasVote(userID string) bool {
	for _, id := range s.Votes {
		if id == userID {
			return true
		}
	}
	return false
}

// ReactionCount compte toutes les réactions, tous emojis confondus
func (s *Submission) ReactionCount() int {
	total := 0
	for _, users := range s.Reactions {
		total += len(users)
	}
	return total
}

// SubmissionView est la vue renvoyée par GET /activities/{id}/submissions
type SubmissionView struct {
	ID              string    `json:"id"`
	ActivityID      string    `json:"activityId"`
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	ProfilePhotoURL string    `json:"profilePhotoUrl,omitempty"`
	PhotoURL        string    `json:"photoUrl"`
	SubmittedAt     time.Time `json:"submittedAt"`
	Votes           []string  `json:"votes"`
	VoteCount       int       `json:"voteCount"`
}
