package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestCloseNilConnection(t *testing.T) {
	database := &Database{}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = RunMigrations(db)
	assert.NoError(t, err)

	for _, table := range []string{"users", "todos", "events"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s to exist", table)
	}
}
