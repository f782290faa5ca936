package handler

import (
	"net/http"

	"github.com/MilesT98/Actify/internal/utils"
)

// Root affiche la bannière et les routes principales de l'API
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]interface{}{
		"name":    "Actify API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/api/auth/register", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/api/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/api/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/api/users/me", "description": "Profil de l'appelant"},
				{"method": "PUT", "path": "/api/users/profile", "description": "Mise à jour du profil"},
			},
			"interests": []map[string]string{
				{"method": "GET", "path": "/api/interests", "description": "Centres d'intérêt disponibles"},
				{"method": "POST", "path": "/api/interests", "description": "Créer un centre d'intérêt"},
			},
			"groups": []map[string]string{
				{"method": "POST", "path": "/api/groups", "description": "Créer un groupe"},
				{"method": "POST", "path": "/api/groups/join", "description": "Rejoindre par code d'invitation"},
				{"method": "GET", "path": "/api/groups", "description": "Groupes de l'appelant"},
				{"method": "GET", "path": "/api/groups/public", "description": "Groupes publics"},
				{"method": "GET", "path": "/api/groups/{id}", "description": "Détail d'un groupe"},
				{"method": "DELETE", "path": "/api/groups/{id}/members/{userId}", "description": "Retirer un membre (admin)"},
				{"method": "POST", "path": "/api/groups/{id}/admins/{userId}", "description": "Promouvoir admin (admin)"},
				{"method": "POST", "path": "/api/groups/{id}/activities", "description": "Proposer une activité"},
				{"method": "POST", "path": "/api/groups/{id}/select-daily", "description": "Tirer le défi du jour"},
				{"method": "GET", "path": "/api/groups/{id}/leaderboard", "description": "Classement du groupe"},
			},
			"submissions": []map[string]string{
				{"method": "POST", "path": "/api/activities/{id}/submissions", "description": "Soumettre une preuve photo"},
				{"method": "GET", "path": "/api/activities/{id}/submissions", "description": "Soumissions d'une activité"},
				{"method": "POST", "path": "/api/submissions/{id}/vote", "description": "Voter (toggle)"},
				{"method": "POST", "path": "/api/submissions/{id}/react", "description": "Réagir avec un emoji (toggle)"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/api/challenges/active", "description": "Défis en cours"},
				{"method": "GET", "path": "/api/challenges/featured", "description": "Défis en vedette"},
				{"method": "GET", "path": "/api/challenges/history", "description": "Historique des défis"},
			},
			"leaderboards": []map[string]string{
				{"method": "GET", "path": "/api/leaderboard/global", "description": "Classement global"},
				{"method": "GET", "path": "/api/leaderboard/friends", "description": "Classement des amis"},
			},
			"notifications": []map[string]string{
				{"method": "GET", "path": "/api/notifications", "description": "Notifications de l'appelant"},
				{"method": "PUT", "path": "/api/notifications/{id}/read", "description": "Marquer comme lue"},
				{"method": "PUT", "path": "/api/notifications/read-all", "description": "Tout marquer comme lu"},
			},
			"misc": []map[string]string{
				{"method": "POST", "path": "/api/upload", "description": "Upload générique d'image"},
				{"method": "GET", "path": "/health", "description": "Health check"},
				{"method": "GET", "path": "/metrics", "description": "Métriques Prometheus"},
			},
		},
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
