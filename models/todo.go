package models

import (
	"time"
)

// TodoStatus is the lifecycle state of a todo item.
type TodoStatus string

const (
	StatusPending   TodoStatus = "Pending"
	StatusDone      TodoStatus = "Done"
	StatusCancelled TodoStatus = "Cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s TodoStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusDone, StatusCancelled:
		return true
	}
	return false
}

type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:60;not null;index" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Status      TodoStatus `gorm:"size:20;not null;index" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
