// Package broker carries stored notifications between API instances over a
// RabbitMQ fanout exchange so every instance can reach its own websocket clients.
package broker

import (
	"encoding/json"
	"errors"
	"fmt"

	"cliper/internal/models"
)

var ErrMalformedEvent = errors.New("malformed notification event")

type NotificationEvent struct {
	RecipientID  string               `json:"recipientId"`
	Notification *models.Notification `json:"notification"`
}

func Encode(recipientID string, notification *models.Notification) ([]byte, error) {
	return json.Marshal(NotificationEvent{RecipientID: recipientID, Notification: notification})
}

func Decode(body []byte) (NotificationEvent, error) {
	var ev NotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.RecipientID == "" || ev.Notification == nil {
		return ev, ErrMalformedEvent
	}
	return ev, nil
}
