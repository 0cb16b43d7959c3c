package database

import (
	"log"

	"tasknest-app/tasknest/models"

	"gorm.io/gorm"
)

// RunMigrations keeps the schema in sync with the registered models.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Todo{},
		&models.Event{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
