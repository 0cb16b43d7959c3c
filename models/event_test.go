package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	testCases := []struct {
		name    string
		event   string
		entity  string
		data    interface{}
		wantErr bool
	}{
		{
			name:    "Valid event",
			event:   "todo.created",
			entity:  "todo",
			data:    map[string]interface{}{"id": 1, "user_id": 2},
			wantErr: false,
		},
		{
			name:    "Invalid JSON data",
			event:   "todo.created",
			entity:  "todo",
			data:    make(chan int), // Unmarshalable type
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := NewEvent(tc.event, tc.entity, tc.data)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, event)
			assert.Equal(t, tc.event, event.Event)
			assert.Equal(t, tc.entity, event.Entity)
			assert.False(t, event.Published)
			assert.NotZero(t, event.ID)
			assert.False(t, event.Timestamp.IsZero())
		})
	}
}

func TestEventToMessage(t *testing.T) {
	event, err := NewEvent("todo.updated", "todo", map[string]interface{}{"id": 5, "user_id": 3})
	assert.NoError(t, err)

	message, err := event.ToMessage()
	assert.NoError(t, err)
	assert.Equal(t, event.ID.String(), message.ID)
	assert.Equal(t, "todo.updated", message.Event)
	assert.Equal(t, float64(3), message.Payload["user_id"])
}
