package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/MilesT98/Actify/internal/challenge"
	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

type ReactRequest struct {
	Emoji string `json:"emoji"`
}

// CreateSubmission enregistre la preuve photo de l'appelant pour une
// activité. Multipart : fichier "photo" obligatoire, champs optionnels
// "caption", "lat", "lng".
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	ctx := r.Context()
	photoURL, err := h.photos.UploadSubmissionPhoto(ctx, file, uuid.NewString())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload photo: "+err.Error())
		return
	}

	input := challenge.SubmissionInput{Caption: r.FormValue("caption")}
	if latRaw, lngRaw := r.FormValue("lat"), r.FormValue("lng"); latRaw != "" && lngRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lng, errLng := strconv.ParseFloat(lngRaw, 64)
		if errLat != nil || errLng != nil {
			utils.Error(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		input.Location = &model.GeoPoint{Lat: lat, Lng: lng}
	}

	submission, err := h.ledger.Submit(ctx, mux.Vars(r)["id"], user.ID, photoURL, input, time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}

	utils.Created(w, submission)
}

// GetSubmissions liste les soumissions d'une activité, triées par nombre
// de votes décroissant. Réservé aux membres du groupe.
func (h *Handler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx := r.Context()
	activity, err := h.store.GetActivity(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "activity not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load activity")
		return
	}

	group, err := h.store.GetGroup(ctx, activity.GroupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	if !group.HasMember(user.ID) {
		utils.Error(w, http.StatusForbidden, "not a member of this group")
		return
	}

	submissions, err := h.store.ListSubmissionsByActivity(ctx, activity.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list submissions")
		return
	}

	views := make([]model.SubmissionView, 0, len(submissions))
	for _, s := range submissions {
		username := ""
		photoURL := ""
		if author, err := h.store.GetUser(ctx, s.UserID); err == nil {
			username = author.Username
			photoURL = author.ProfilePhotoURL
		}
		views = append(views, model.SubmissionView{
			ID:              s.ID,
			ActivityID:      s.ActivityID,
			UserID:          s.UserID,
			Username:        username,
			ProfilePhotoURL: photoURL,
			PhotoURL:        s.PhotoURL,
			SubmittedAt:     s.SubmittedAt,
			Votes:           s.Votes,
			VoteCount:       len(s.Votes),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].VoteCount > views[j].VoteCount
	})

	utils.Success(w, views)
}

// ToggleVote ajoute ou retire le vote de l'appelant
func (h *Handler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	submission, err := h.engagement.ToggleVote(r.Context(), mux.Vars(r)["id"], user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.Success(w, submission)
}

// ToggleReaction ajoute ou retire la réaction emoji de l'appelant
func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req ReactRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Emoji == "" {
		utils.Error(w, http.StatusBadRequest, "emoji is required")
		return
	}

	submission, err := h.engagement.ToggleReaction(r.Context(), mux.Vars(r)["id"], user.ID, req.Emoji)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.Success(w, submission)
}
