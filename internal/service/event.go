package service

import (
	"DocVault/model"
	"encoding/json"
	"time"
)

// ViewEventMessage is the payload published to the analytics queue.
type ViewEventMessage struct {
	OwnerUserID uint64    `json:"owner_user_id"`
	LinkID      string    `json:"link_id"`
	Email       string    `json:"email"`
	ViewedAt    time.Time `json:"viewed_at"`
}

// MarshalViewEvent encodes a viewer event for the queue.
func MarshalViewEvent(event *model.ViewerEvent) ([]byte, error) {
	return json.Marshal(ViewEventMessage{
		OwnerUserID: event.OwnerUserID,
		LinkID:      event.LinkID,
		Email:       event.Email,
		ViewedAt:    event.ViewedAt,
	})
}

// UnmarshalViewEvent decodes a queue payload.
func UnmarshalViewEvent(body []byte) (*ViewEventMessage, error) {
	var msg ViewEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
