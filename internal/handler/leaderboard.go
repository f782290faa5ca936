package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/utils"
)

// GetGroupLeaderboard calcule et renvoie le classement du groupe
func (h *Handler) GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries, err := h.engine.Compute(r.Context(), mux.Vars(r)["id"], user.ID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.Success(w, entries)
}

// GetGlobalLeaderboard classe tous les utilisateurs par points cumulés
func (h *Handler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context(), 0)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalPoints > users[j].TotalPoints
	})

	entries := make([]model.GlobalLeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, model.GlobalLeaderboardEntry{
			ID:                  u.ID,
			Username:            u.Username,
			ProfilePhotoURL:     u.ProfilePhotoURL,
			Streak:              u.Streak,
			TotalPoints:         u.TotalPoints,
			CompletedChallenges: u.CompletedChallenges,
			Rank:                i + 1,
		})
	}

	utils.Success(w, entries)
}

// GetFriendsLeaderboard est pour l'instant un alias du classement global
func (h *Handler) GetFriendsLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.GetGlobalLeaderboard(w, r)
}
