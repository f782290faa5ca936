package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

type CreateActivityRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Emoji        string `json:"emoji"`
	Difficulty   string `json:"difficulty"`
	DeadlineDays int    `json:"deadlineDays"`
}

// CreateActivity ajoute une proposition au vivier du groupe. Réservé aux
// membres ; l'activité reste en attente jusqu'au tirage quotidien.
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateActivityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx := r.Context()
	group, err := h.store.GetGroup(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	if !group.HasMember(user.ID) {
		utils.Error(w, http.StatusForbidden, "not a member of this group")
		return
	}

	now := time.Now().UTC()
	activity := &model.Activity{
		ID:          uuid.NewString(),
		GroupID:     group.ID,
		CreatedBy:   user.ID,
		Title:       req.Title,
		Description: req.Description,
		Emoji:       req.Emoji,
		Difficulty:  req.Difficulty,
		CreatedAt:   now,
	}
	if req.DeadlineDays > 0 {
		deadline := now.AddDate(0, 0, req.DeadlineDays)
		activity.Deadline = &deadline
	}

	if err := h.store.InsertActivity(ctx, activity); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create activity: "+err.Error())
		return
	}

	utils.Created(w, activity)
}

// SelectDaily tire (ou renvoie) le défi du jour du groupe
func (h *Handler) SelectDaily(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	activity, err := h.selector.SelectDaily(r.Context(), mux.Vars(r)["id"], user.ID, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.Success(w, activity)
}
