package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is an outbox row recorded in the same transaction as the mutation it
// describes, then published to the broker after commit.
type Event struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Event     string          `gorm:"not null" json:"event"`
	Entity    string          `gorm:"not null" json:"entity"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
	Data      json.RawMessage `gorm:"not null" json:"data"`
	Published bool            `gorm:"not null;default:false" json:"published"`
}

func NewEvent(event, entity string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Entity:    entity,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

// Message is the wire format published on the broker and forwarded to
// WebSocket clients.
type Message struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

func (e *Event) ToMessage() (*Message, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return nil, err
	}

	return &Message{
		ID:        e.ID.String(),
		Event:     e.Event,
		Timestamp: e.Timestamp,
		Payload:   payload,
	}, nil
}
