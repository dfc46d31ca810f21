package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cliper/internal/models"
	"cliper/internal/service"
)

func TestListNotificationsHandler(t *testing.T) {
	t.Run("filters by type", func(t *testing.T) {
		s := newTestServer()
		s.notifications.On("List", mock.Anything, "u1", "like", models.Page{Page: 1, Limit: 20}).
			Return([]models.Notification{{ID: "n1", Type: "like", Sender: models.UserSummary{Username: "bob"}}}, false, nil)

		rr := s.do(http.MethodGet, "/api/notifications?type=like", "u1", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		response := decodeBody(t, rr)
		n := response["notifications"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "bob", n["sender"].(map[string]interface{})["username"])
		assert.Equal(t, false, response["hasMore"])
	})

	t.Run("invalid type", func(t *testing.T) {
		s := newTestServer()
		s.notifications.On("List", mock.Anything, "u1", "mention", mock.Anything).
			Return(nil, false, service.NewValidationError("Invalid notification type"))

		rr := s.do(http.MethodGet, "/api/notifications?type=mention", "u1", nil)

		assertJSONError(t, rr, http.StatusBadRequest, "Invalid notification type")
	})
}

func TestNotificationReadState(t *testing.T) {
	s := newTestServer()
	s.notifications.On("MarkRead", mock.Anything, "n1", "u1").Return(nil)
	s.notifications.On("MarkRead", mock.Anything, "n2", "u1").Return(service.ErrNotificationNotFound)
	s.notifications.On("MarkAllRead", mock.Anything, "u1").Return(nil)
	s.notifications.On("UnreadCount", mock.Anything, "u1").Return(4, nil)

	rr := s.do(http.MethodPatch, "/api/notifications/n1/read", "u1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Notification marked as read", decodeBody(t, rr)["message"])

	rr = s.do(http.MethodPatch, "/api/notifications/n2/read", "u1", nil)
	assertJSONError(t, rr, http.StatusNotFound, "Notification not found")

	rr = s.do(http.MethodPatch, "/api/notifications/read-all", "u1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "All notifications marked as read", decodeBody(t, rr)["message"])

	rr = s.do(http.MethodGet, "/api/notifications/unread-count", "u1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(4), decodeBody(t, rr)["unreadCount"])
}

func TestDeleteNotificationHandler(t *testing.T) {
	s := newTestServer()
	s.notifications.On("Delete", mock.Anything, "n1", "u1").Return(nil)

	rr := s.do(http.MethodDelete, "/api/notifications/n1", "u1", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Notification deleted", decodeBody(t, rr)["message"])

	rr = s.do(http.MethodDelete, "/api/notifications/n1", "", nil)
	assertJSONError(t, rr, http.StatusUnauthorized, "No token provided")
}
