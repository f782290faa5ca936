package model

import "time"

// DefaultMaxMembers est la taille maximale d'un groupe à la création
const DefaultMaxMembers = 15

// Group représente un groupe d'amis qui partagent des défis quotidiens.
// Invariants maintenus par le store et les services :
// admins ⊆ members, admins non vide tant que le groupe est actif,
// len(members) <= maxMembers.
type Group struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	Members       []string  `json:"members"`
	Admins        []string  `json:"admins"`
	InviteCode    string    `json:"inviteCode"`
	GroupPhotoURL string    `json:"groupPhotoUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	IsActive      bool      `json:"isActive"`
	MaxMembers    int       `json:"maxMembers"`
}

// HasMember indique si l'utilisateur fait partie du groupe
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// HasAdmin indique si l'utilisateur est admin du groupe
func (g *Group) HasAdmin(userID string) bool {
	for _, id := range g.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// GroupDetail est la vue renvoyée par GET /groups/{id} : membres résolus,
// défi du jour et propositions en attente.
type GroupDetail struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	CreatedBy         string        `json:"createdBy"`
	InviteCode        string        `json:"inviteCode"`
	CreatedAt         time.Time     `json:"createdAt"`
	Members           []UserSummary `json:"members"`
	TodayActivity     *Activity     `json:"todayActivity"`
	PendingActivities []Activity    `json:"pendingActivities"`
}
