package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"cliper/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one websocket connection bound to the identity proven at handshake.
type Client struct {
	ID       string
	identity service.Identity
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	once     sync.Once
	log      logrus.FieldLogger
}

func newClient(hub *Hub, conn *websocket.Conn, identity service.Identity, log logrus.FieldLogger) *Client {
	id := ulid.Make().String()
	return &Client{
		ID:       id,
		identity: identity,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		log:      log.WithFields(logrus.Fields{"client": id, "user": identity.UserID}),
	}
}

// enqueue never blocks: a full queue drops the frame.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.log.Warn("send queue full, dropping frame")
		return false
	}
}

func (c *Client) Send(event string, data any) bool {
	frame, err := json.Marshal(outgoing{Event: event, Data: data})
	if err != nil {
		c.log.WithError(err).WithField("event", event).Error("failed to encode event")
		return false
	}
	return c.enqueue(frame)
}

func (c *Client) sendError(message string) {
	c.Send(EventError, ErrorEvent{Message: message})
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.hub.Remove(c)
		_ = c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Debug("connection closed unexpectedly")
			}
			return
		}
		c.handle(env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// ownUserID decodes a bare user id payload and checks it against the
// handshake identity.
func (c *Client) ownUserID(data json.RawMessage) bool {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil {
		c.sendError("Invalid payload")
		return false
	}
	if userID != c.identity.UserID {
		c.sendError("Forbidden")
		return false
	}
	return true
}

func (c *Client) handle(env Envelope) {
	switch env.Event {
	case EventAuthenticate:
		if c.ownUserID(env.Data) {
			c.hub.Register(c.identity.UserID, c)
			c.log.Info("user authenticated")
		}

	case EventJoinNotifications:
		if c.ownUserID(env.Data) {
			c.hub.Join(NotificationRoom(c.identity.UserID), c)
		}

	case EventLeaveNotifications:
		if c.ownUserID(env.Data) {
			c.hub.Leave(NotificationRoom(c.identity.UserID), c)
		}

	case EventTyping:
		var req TypingRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RecipientID == "" {
			c.sendError("Invalid payload")
			return
		}
		c.hub.RelayTyping(c.identity.UserID, req)

	default:
		c.sendError("Unknown event")
	}
}
