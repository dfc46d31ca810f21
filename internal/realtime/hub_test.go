package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliper/internal/models"
	"cliper/internal/service"
)

// newTestServer serves the websocket handler with the identity taken from
// the "as" query parameter instead of a token.
func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	hub := NewHub(logger)
	ws := NewHandler(hub, "*", logger)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if as := r.URL.Query().Get("as"); as != "" {
			r = r.WithContext(service.ContextWithIdentity(r.Context(), service.Identity{UserID: as}))
		}
		ws.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?as=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func emit(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Envelope{Event: event, Data: raw}))
}

func receive(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestHub_PushNotificationReachesJoinedRoom(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "bob")

	emit(t, conn, EventJoinNotifications, "bob")
	require.Eventually(t, func() bool { return hub.RoomSize(NotificationRoom("bob")) == 1 }, time.Second, 10*time.Millisecond)

	err := hub.PushNotification(context.Background(), "bob", &models.Notification{ID: "n1", Type: models.NotificationFollow})
	require.NoError(t, err)

	env := receive(t, conn)
	assert.Equal(t, EventNewNotification, env.Event)

	var n models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &n))
	assert.Equal(t, "n1", n.ID)
}

func TestHub_RejectsForeignRoom(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "mallory")

	emit(t, conn, EventJoinNotifications, "bob")

	env := receive(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.JSONEq(t, `{"message":"Forbidden"}`, string(env.Data))
	assert.Zero(t, hub.RoomSize(NotificationRoom("bob")))
}

func TestHub_TypingRelay(t *testing.T) {
	hub, srv := newTestServer(t)
	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")

	emit(t, bob, EventAuthenticate, "bob")
	require.Eventually(t, func() bool { _, ok := hub.Lookup("bob"); return ok }, time.Second, 10*time.Millisecond)

	emit(t, alice, EventTyping, TypingRequest{RecipientID: "bob", IsTyping: true})

	env := receive(t, bob)
	assert.Equal(t, EventUserTyping, env.Event)
	assert.JSONEq(t, `{"userId":"alice","isTyping":true}`, string(env.Data))
}

func TestHub_TypingToUnknownRecipientIsDropped(t *testing.T) {
	logger, _ := test.NewNullLogger()
	hub := NewHub(logger)

	assert.False(t, hub.RelayTyping("alice", TypingRequest{RecipientID: "ghost", IsTyping: true}))
}

func TestHub_DisconnectKeepsNewerRegistration(t *testing.T) {
	hub, srv := newTestServer(t)

	first := dial(t, srv, "alice")
	emit(t, first, EventAuthenticate, "alice")
	emit(t, first, EventJoinNotifications, "alice")
	require.Eventually(t, func() bool { return hub.RoomSize(NotificationRoom("alice")) == 1 }, time.Second, 10*time.Millisecond)
	older, _ := hub.Lookup("alice")

	second := dial(t, srv, "alice")
	emit(t, second, EventAuthenticate, "alice")
	require.Eventually(t, func() bool {
		c, ok := hub.Lookup("alice")
		return ok && c != older
	}, time.Second, 10*time.Millisecond)
	newer, _ := hub.Lookup("alice")

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool { return hub.RoomSize(NotificationRoom("alice")) == 0 }, time.Second, 10*time.Millisecond)

	current, ok := hub.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, newer, current)
}

func TestClient_FullQueueDropsFrames(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &Client{send: make(chan []byte, 1), done: make(chan struct{}), log: logger}

	assert.True(t, c.enqueue([]byte("a")))
	assert.False(t, c.enqueue([]byte("b")))

	close(c.done)
	<-c.send
	assert.False(t, c.enqueue([]byte("c")))
}

func TestHandler_RequiresIdentity(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
