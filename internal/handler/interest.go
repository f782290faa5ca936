package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

type CreateInterestRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

func (h *Handler) GetInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := h.store.ListInterests(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list interests")
		return
	}
	utils.Success(w, interests)
}

func (h *Handler) CreateInterest(w http.ResponseWriter, r *http.Request) {
	var req CreateInterestRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx := r.Context()
	if _, err := h.store.GetInterestByName(ctx, req.Name); err == nil {
		utils.Error(w, http.StatusConflict, "interest already exists")
		return
	} else if err != store.ErrNotFound {
		utils.Error(w, http.StatusInternalServerError, "could not check interest")
		return
	}

	interest := &model.Interest{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Category: req.Category,
		Icon:     req.Icon,
	}
	if err := h.store.InsertInterest(ctx, interest); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create interest: "+err.Error())
		return
	}

	utils.Created(w, interest)
}
