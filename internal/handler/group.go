package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/middleware"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type JoinGroupRequest struct {
	InviteCode string `json:"inviteCode"`
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateGroupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	// Le créateur est seul membre et seul admin au départ
	group := &model.Group{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   user.ID,
		Members:     []string{user.ID},
		Admins:      []string{user.ID},
		InviteCode:  utils.GenerateInviteCode(),
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
		MaxMembers:  model.DefaultMaxMembers,
	}

	if err := h.store.InsertGroup(r.Context(), group); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create group: "+err.Error())
		return
	}

	logger.Success("group %s created by %s", group.Name, user.Username)
	utils.Created(w, group)
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req JoinGroupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	group, err := h.store.GetGroupByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(req.InviteCode)))
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "invalid invite code")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not look up group")
		return
	}

	if group.HasMember(user.ID) {
		utils.Error(w, http.StatusConflict, "already a member of this group")
		return
	}
	if len(group.Members) >= group.MaxMembers {
		utils.Error(w, http.StatusConflict, "group is full")
		return
	}

	if err := h.store.AddGroupMember(ctx, group.ID, user.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join group: "+err.Error())
		return
	}

	// Les admins sont prévenus de l'arrivée
	for _, adminID := range group.Admins {
		h.notifier.Notify(ctx, notify.Message{
			UserID: adminID,
			Title:  "New member in " + group.Name,
			Body:   user.Username + " joined the group.",
			Type:   model.NotificationTypeGroup,
			Link:   "/groups/" + group.ID,
		})
	}

	updated, err := h.store.GetGroup(ctx, group.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reload group")
		return
	}
	utils.Success(w, updated)
}

// GetGroup renvoie le détail d'un groupe : membres résolus, défi du jour
// et propositions en attente. Réservé aux membres.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
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

	members := make([]model.UserSummary, 0, len(group.Members))
	for _, memberID := range group.Members {
		member, err := h.store.GetUser(ctx, memberID)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			utils.Error(w, http.StatusInternalServerError, "could not load member")
			return
		}
		members = append(members, model.UserSummary{
			ID:              member.ID,
			Username:        member.Username,
			ProfilePhotoURL: member.ProfilePhotoURL,
		})
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	today, err := h.store.FindActivitySelectedBetween(ctx, group.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load today's activity")
		return
	}

	pending, err := h.store.ListPendingActivities(ctx, group.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load pending activities")
		return
	}

	utils.Success(w, model.GroupDetail{
		ID:                group.ID,
		Name:              group.Name,
		Description:       group.Description,
		CreatedBy:         group.CreatedBy,
		InviteCode:        group.InviteCode,
		CreatedAt:         group.CreatedAt,
		Members:           members,
		TodayActivity:     today,
		PendingActivities: pending,
	})
}

func (h *Handler) GetMyGroups(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	groups, err := h.store.ListGroupsByMember(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list groups")
		return
	}
	utils.Success(w, groups)
}

func (h *Handler) GetPublicGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListPublicGroups(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list groups")
		return
	}
	utils.Success(w, groups)
}

// RemoveMember retire un membre du groupe. Réservé aux admins ; retirer
// le dernier admin est refusé.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vars := mux.Vars(r)
	ctx := r.Context()

	group, err := h.store.GetGroup(ctx, vars["id"])
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	if !group.HasAdmin(user.ID) {
		utils.Error(w, http.StatusForbidden, "only admins can remove members")
		return
	}

	targetID := vars["userId"]
	if !group.HasMember(targetID) {
		utils.Error(w, http.StatusNotFound, "user is not a member of this group")
		return
	}
	// Jamais de groupe actif sans admin
	if group.HasAdmin(targetID) && len(group.Admins) == 1 {
		utils.Error(w, http.StatusBadRequest, "cannot remove the last admin")
		return
	}

	if group.HasAdmin(targetID) {
		if err := h.store.RemoveGroupAdmin(ctx, group.ID, targetID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not demote member: "+err.Error())
			return
		}
	}
	if err := h.store.RemoveGroupMember(ctx, group.ID, targetID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not remove member: "+err.Error())
		return
	}

	h.notifier.Notify(ctx, notify.Message{
		UserID: targetID,
		Title:  "Removed from " + group.Name,
		Body:   "You have been removed from the group by an admin.",
		Type:   model.NotificationTypeGroup,
	})

	utils.Message(w, "member removed")
}

// PromoteAdmin promeut un membre admin. Réservé aux admins ; une
// promotion en double est refusée.
func (h *Handler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vars := mux.Vars(r)
	ctx := r.Context()

	group, err := h.store.GetGroup(ctx, vars["id"])
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "group not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	if !group.HasAdmin(user.ID) {
		utils.Error(w, http.StatusForbidden, "only admins can promote members")
		return
	}

	targetID := vars["userId"]
	if !group.HasMember(targetID) {
		utils.Error(w, http.StatusNotFound, "user is not a member of this group")
		return
	}
	if group.HasAdmin(targetID) {
		utils.Error(w, http.StatusConflict, "user is already an admin")
		return
	}

	if err := h.store.AddGroupAdmin(ctx, group.ID, targetID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not promote member: "+err.Error())
		return
	}

	h.notifier.Notify(ctx, notify.Message{
		UserID: targetID,
		Title:  "You are now an admin of " + group.Name,
		Body:   user.Username + " promoted you to admin.",
		Type:   model.NotificationTypeGroup,
		Link:   "/groups/" + group.ID,
	})

	utils.Message(w, "member promoted")
}
