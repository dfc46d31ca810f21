package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"cliper/internal/models"
)

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, hasMore, err := h.NotificationService.List(
		r.Context(),
		currentUserID(r),
		r.URL.Query().Get("type"),
		pageFromQuery(r, models.DefaultPageLimit),
	)
	if err != nil {
		h.fail(w, err, "Failed to fetch notifications")
		return
	}

	writeSuccess(w, map[string]interface{}{"notifications": list, "hasMore": hasMore})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkRead(r.Context(), mux.Vars(r)["id"], currentUserID(r)); err != nil {
		h.fail(w, err, "Failed to mark notification as read")
		return
	}

	writeSuccess(w, map[string]interface{}{"message": "Notification marked as read"})
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkAllRead(r.Context(), currentUserID(r)); err != nil {
		h.fail(w, err, "Failed to mark notifications as read")
		return
	}

	writeSuccess(w, map[string]interface{}{"message": "All notifications marked as read"})
}

func (h *Handlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.NotificationService.UnreadCount(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, err, "Failed to get unread count")
		return
	}

	writeSuccess(w, map[string]interface{}{"unreadCount": count})
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.Delete(r.Context(), mux.Vars(r)["id"], currentUserID(r)); err != nil {
		h.fail(w, err, "Failed to delete notification")
		return
	}

	writeSuccess(w, map[string]interface{}{"message": "Notification deleted"})
}
