package handler

import (
	"net/http"
	"time"

	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/utils"
)

const (
	featuredChallengesLimit = 5
	historyChallengesLimit  = 20
)

// callerGroupIDs liste les ids de groupes de l'appelant
func (h *Handler) callerGroupIDs(r *http.Request, userID string) ([]string, error) {
	groups, err := h.store.ListGroupsByMember(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// activeChallenges renvoie les défis sélectionnés non complétés des
// groupes de l'appelant, chacun marqué is_today
func (h *Handler) activeChallenges(r *http.Request, userID string) ([]model.ActivityView, error) {
	groupIDs, err := h.callerGroupIDs(r, userID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	activities, err := h.store.ListActivitiesSelectedSince(r.Context(), groupIDs, dayStart)
	if err != nil {
		return nil, err
	}

	views := make([]model.ActivityView, 0, len(activities))
	for _, a := range activities {
		isToday := a.SelectedForDate.Before(dayStart.Add(24*time.Hour)) && !a.SelectedForDate.Before(dayStart)
		views = append(views, model.ActivityView{
			Activity: a,
			IsToday:  isToday,
			Date:     a.SelectedForDate,
		})
	}
	return views, nil
}

// GetActiveChallenges liste les défis en cours des groupes de l'appelant
func (h *Handler) GetActiveChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	views, err := h.activeChallenges(r, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list challenges")
		return
	}
	utils.Success(w, views)
}

// GetFeaturedChallenges renvoie les premiers défis actifs
func (h *Handler) GetFeaturedChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	views, err := h.activeChallenges(r, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list challenges")
		return
	}
	if len(views) > featuredChallengesLimit {
		views = views[:featuredChallengesLimit]
	}
	utils.Success(w, views)
}

// GetChallengeHistory liste les défis passés des groupes de l'appelant,
// chacun marqué completed selon que l'appelant a soumis ou non
func (h *Handler) GetChallengeHistory(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	groupIDs, err := h.callerGroupIDs(r, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list groups")
		return
	}

	ctx := r.Context()
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	activities, err := h.store.ListActivitiesSelectedBefore(ctx, groupIDs, dayStart, historyChallengesLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list challenges")
		return
	}

	views := make([]model.ActivityView, 0, len(activities))
	for _, a := range activities {
		submission, err := h.store.FindSubmission(ctx, a.ID, user.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not check submissions")
			return
		}
		views = append(views, model.ActivityView{
			Activity:  a,
			Completed: submission != nil,
			Date:      a.SelectedForDate,
		})
	}
	utils.Success(w, views)
}
