package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventProductCreated EventType = "product_created"
	EventProductDeleted EventType = "product_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// UserRegisteredPayload payload. Never carries credentials.
type UserRegisteredPayload struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// ProductChangedPayload payload for product_created and product_deleted.
type ProductChangedPayload struct {
	Title string  `json:"title"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
}
