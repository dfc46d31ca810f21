// Package realtime keeps the registry of live websocket connections: which
// user is reachable on which connection and which connections listen to a
// notification room.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"cliper/internal/models"
)

const (
	EventAuthenticate       = "authenticate"
	EventJoinNotifications  = "joinNotifications"
	EventLeaveNotifications = "leaveNotifications"
	EventTyping             = "typing"

	EventNewNotification = "newNotification"
	EventUserTyping      = "userTyping"
	EventError           = "error"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outgoing struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type TypingRequest struct {
	RecipientID string `json:"recipientId"`
	IsTyping    bool   `json:"isTyping"`
}

type TypingEvent struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

func NotificationRoom(userID string) string {
	return "notifications_" + userID
}

// Hub is safe for concurrent use. A user maps to at most one connection;
// the last connection to authenticate wins.
type Hub struct {
	mu    sync.RWMutex
	users map[string]*Client
	rooms map[string]map[*Client]struct{}
	log   logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		users: make(map[string]*Client),
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

func (h *Hub) Register(userID string, c *Client) {
	h.mu.Lock()
	h.users[userID] = c
	h.mu.Unlock()
}

func (h *Hub) Lookup(userID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.users[userID]
	return c, ok
}

func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, c)
}

func (h *Hub) leaveLocked(room string, c *Client) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Remove drops every trace of c. The user entry is only cleared if it
// still points at c, so a newer connection for the same user survives.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, registered := range h.users {
		if registered == c {
			delete(h.users, userID)
		}
	}
	for room := range h.rooms {
		h.leaveLocked(room, c)
	}
}

// RoomSize reports how many connections listen to room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Emit sends an event to every member of room and returns how many
// connections accepted it.
func (h *Hub) Emit(room, event string, data any) int {
	frame, err := json.Marshal(outgoing{Event: event, Data: data})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Error("failed to encode event")
		return 0
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range members {
		if c.enqueue(frame) {
			delivered++
		}
	}
	return delivered
}

// PushNotification delivers a stored notification to the recipient's room.
// Recipients without a live connection are skipped silently.
func (h *Hub) PushNotification(_ context.Context, recipientID string, notification *models.Notification) error {
	room := NotificationRoom(recipientID)
	if h.RoomSize(room) == 0 {
		return nil
	}

	delivered := h.Emit(room, EventNewNotification, notification)
	h.log.WithFields(logrus.Fields{
		"recipient": recipientID,
		"delivered": delivered,
	}).Debug("notification pushed")
	return nil
}

// RelayTyping forwards a typing indicator to the recipient's registered
// connection. It reports false when the recipient is not connected.
func (h *Hub) RelayTyping(senderID string, req TypingRequest) bool {
	target, ok := h.Lookup(req.RecipientID)
	if !ok {
		return false
	}
	return target.Send(EventUserTyping, TypingEvent{UserID: senderID, IsTyping: req.IsTyping})
}
