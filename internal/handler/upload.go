package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/MilesT98/Actify/internal/middleware"
	"github.com/MilesT98/Actify/internal/utils"
)

// Upload est l'endpoint générique d'envoi d'image : il stocke le fichier
// et renvoie son URL opaque
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserFromContext(r); err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadSubmissionPhoto(r.Context(), file, uuid.NewString())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload file: "+err.Error())
		return
	}

	utils.Success(w, map[string]string{"url": url})
}
