package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MilesT98/Actify/internal/handler"
	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/middleware"
	"github.com/MilesT98/Actify/internal/store"
)

// SetupRouter câble toutes les routes sur le handler injecté
func SetupRouter(h *handler.Handler, st store.Store) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logger)

	// Health / metrics hors du préfixe /api
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("", h.Root).Methods(http.MethodGet)
	api.HandleFunc("/", h.Root).Methods(http.MethodGet)

	// Auth (routes publiques)
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// Tout le reste exige un token de session valide
	authenticated := api.PathPrefix("/").Subrouter()
	authenticated.Use(middleware.Auth(st))

	authenticated.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	// Users
	authenticated.HandleFunc("/users/me", h.Me).Methods(http.MethodGet)
	authenticated.HandleFunc("/users/profile", h.UpdateProfile).Methods(http.MethodPut)

	// Interests
	authenticated.HandleFunc("/interests", h.GetInterests).Methods(http.MethodGet)
	authenticated.HandleFunc("/interests", h.CreateInterest).Methods(http.MethodPost)

	// Groups
	authenticated.HandleFunc("/groups", h.CreateGroup).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups", h.GetMyGroups).Methods(http.MethodGet)
	authenticated.HandleFunc("/groups/join", h.JoinGroup).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups/public", h.GetPublicGroups).Methods(http.MethodGet)
	authenticated.HandleFunc("/groups/{id}", h.GetGroup).Methods(http.MethodGet)
	authenticated.HandleFunc("/groups/{id}/members/{userId}", h.RemoveMember).Methods(http.MethodDelete)
	authenticated.HandleFunc("/groups/{id}/admins/{userId}", h.PromoteAdmin).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups/{id}/activities", h.CreateActivity).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups/{id}/select-daily", h.SelectDaily).Methods(http.MethodPost)
	authenticated.HandleFunc("/groups/{id}/leaderboard", h.GetGroupLeaderboard).Methods(http.MethodGet)

	// Submissions
	authenticated.HandleFunc("/activities/{id}/submissions", h.CreateSubmission).Methods(http.MethodPost)
	authenticated.HandleFunc("/activities/{id}/submissions", h.GetSubmissions).Methods(http.MethodGet)
	authenticated.HandleFunc("/submissions/{id}/vote", h.ToggleVote).Methods(http.MethodPost)
	authenticated.HandleFunc("/submissions/{id}/react", h.ToggleReaction).Methods(http.MethodPost)

	// Challenges (vues transverses)
	authenticated.HandleFunc("/challenges/active", h.GetActiveChallenges).Methods(http.MethodGet)
	authenticated.HandleFunc("/challenges/featured", h.GetFeaturedChallenges).Methods(http.MethodGet)
	authenticated.HandleFunc("/challenges/history", h.GetChallengeHistory).Methods(http.MethodGet)

	// Leaderboards
	authenticated.HandleFunc("/leaderboard/global", h.GetGlobalLeaderboard).Methods(http.MethodGet)
	authenticated.HandleFunc("/leaderboard/friends", h.GetFriendsLeaderboard).Methods(http.MethodGet)

	// Notifications
	authenticated.HandleFunc("/notifications", h.GetNotifications).Methods(http.MethodGet)
	authenticated.HandleFunc("/notifications/read-all", h.MarkAllNotificationsRead).Methods(http.MethodPut)
	authenticated.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods(http.MethodPut)

	// Upload générique
	authenticated.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
