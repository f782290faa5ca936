package model

import (
	"time"
)

// UserProfile représente un utilisateur de l'application
type UserProfile struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Bio                 string    `json:"bio,omitempty"`
	Interests           []string  `json:"interests"`
	ProfilePhotoURL     string    `json:"profilePhotoUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	Streak              int       `json:"streak"`
	TotalPoints         int       `json:"totalPoints"`
	CompletedChallenges int       `json:"completedChallenges"`
	IsActive            bool      `json:"isActive"`
}

// Session représente une session active (token opaque côté client)
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary contient les informations publiques d'un membre
type UserSummary struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

type Interest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}
