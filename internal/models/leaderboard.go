package model

import "time"

// LeaderboardEntry est une ligne du classement d'un groupe, recalculée
// à chaque lecture. Score fractionnaire : les réactions comptent des
// demi-points. PreviousRank provient du dernier snapshot enregistré.
type LeaderboardEntry struct {
	UserID           string     `json:"userId"`
	GroupID          string     `json:"groupId"`
	Username         string     `json:"username"`
	ProfilePhotoURL  string     `json:"profilePhotoUrl,omitempty"`
	Score            float64    `json:"score"`
	Streak           int        `json:"streak"`
	Rank             int        `json:"rank"`
	PreviousRank     int        `json:"previousRank"`
	Badges           []string   `json:"badges"`
	SubmissionsCount int        `json:"submissionsCount"`
	LastActive       *time.Time `json:"lastActive,omitempty"`
}

// LeaderboardSnapshot est un instantané immuable du classement, conservé
// uniquement pour calculer les deltas de rang au calcul suivant.
// Historique append-only : jamais modifié, jamais supprimé.
type LeaderboardSnapshot struct {
	ID        string             `json:"id"`
	GroupID   string             `json:"groupId"`
	CreatedAt time.Time          `json:"createdAt"`
	Entries   []LeaderboardEntry `json:"entries"`
}

// GlobalLeaderboardEntry est une ligne du classement global tous groupes
// confondus, basé sur les points cumulés
type GlobalLeaderboardEntry struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	ProfilePhotoURL     string `json:"profilePhotoUrl,omitempty"`
	Streak              int    `json:"streak"`
	TotalPoints         int    `json:"totalPoints"`
	CompletedChallenges int    `json:"completedChallenges"`
	Rank                int    `json:"rank"`
}
