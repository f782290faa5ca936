package handler

import (
	"net/http"
	"strings"

	"github.com/MilesT98/Actify/internal/middleware"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

// Me renvoie le profil de l'appelant enrichi de ses groupes, de son
// nombre de soumissions et des centres d'intérêt disponibles
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx := r.Context()
	groups, err := h.store.ListGroupsByMember(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list groups")
		return
	}

	submissionsCount, err := h.store.CountSubmissionsByUser(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count submissions")
		return
	}

	interests, err := h.store.ListInterests(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list interests")
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":               user,
		"groups":             groups,
		"submissionsCount":   submissionsCount,
		"availableInterests": interests,
	})
}

// UpdateProfile modifie bio, centres d'intérêt et photo de profil.
// Multipart : champs "bio" et "interests" (séparés par des virgules),
// fichier optionnel "photo".
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ctx := r.Context()
	var upd store.ProfileUpdate

	if values, ok := r.MultipartForm.Value["bio"]; ok && len(values) > 0 {
		bio := values[0]
		upd.Bio = &bio
	}
	if values, ok := r.MultipartForm.Value["interests"]; ok && len(values) > 0 {
		interests := []string{}
		for _, raw := range strings.Split(values[0], ",") {
			if name := strings.TrimSpace(raw); name != "" {
				interests = append(interests, name)
			}
		}
		upd.Interests = interests
	}

	if file, _, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		url, err := h.photos.UploadProfilePhoto(ctx, file, user.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not upload photo: "+err.Error())
			return
		}
		upd.ProfilePhotoURL = &url
	}

	if err := h.store.UpdateUserProfile(ctx, user.ID, upd); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile: "+err.Error())
		return
	}

	updated, err := h.store.GetUser(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reload profile")
		return
	}

	utils.Success(w, updated)
}
