package services

import (
	"encoding/json"
	"log"

	"tasknest-app/tasknest/broker"
	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/models"
)

// publishEvent pushes a committed outbox event to the broker, best effort. The
// row is flagged as published only when the broker accepted it.
func publishEvent(db *database.Database, event *models.Event) {
	msg, err := event.ToMessage()
	if err != nil {
		log.Printf("Failed to decode event %s: %v", event.ID, err)
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to encode event %s: %v", event.ID, err)
		return
	}

	if err := broker.Publish(event.Event, data); err != nil {
		return
	}

	if err := db.DB.Model(&models.Event{}).Where("id = ?", event.ID).Update("published", true).Error; err != nil {
		log.Printf("Failed to flag event %s as published: %v", event.ID, err)
	}
}
