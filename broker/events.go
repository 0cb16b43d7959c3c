package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TodoCreated EventType = "todo.created"
	TodoUpdated EventType = "todo.updated"
	TodoDeleted EventType = "todo.deleted"

	UserCreated EventType = "user.created"
	UserDeleted EventType = "user.deleted"
)

const (
	// TodoSubjects matches every todo event for subscribers.
	TodoSubjects = "todo.*"
	UserSubjects = "user.*"
)
