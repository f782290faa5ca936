package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MilesT98/Actify/internal/middleware"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

const notificationsPageSize = 50

// GetNotifications liste les dernières notifications de l'appelant
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	notifications, err := h.store.ListNotifications(r.Context(), user.ID, notificationsPageSize)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}

	utils.Success(w, notifications)
}

// MarkNotificationRead marque une notification comme lue. Seul son
// destinataire y est autorisé.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx := r.Context()
	notification, err := h.store.GetNotification(ctx, mux.Vars(r)["id"])
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "notification not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load notification")
		return
	}
	if notification.UserID != user.ID {
		utils.Error(w, http.StatusForbidden, "not your notification")
		return
	}

	if err := h.store.MarkNotificationRead(ctx, notification.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not mark notification read")
		return
	}

	utils.Message(w, "notification marked as read")
}

// MarkAllNotificationsRead marque toutes les notifications de l'appelant
// comme lues
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.store.MarkAllNotificationsRead(r.Context(), user.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not mark notifications read")
		return
	}

	utils.Message(w, "all notifications marked as read")
}
