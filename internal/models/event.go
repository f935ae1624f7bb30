package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType names an account event published to Kafka.
type EventType string

const (
	EventUserRegistered         EventType = "user.registered"
	EventPasswordChanged        EventType = "user.password_changed"
	EventPasswordResetRequested EventType = "user.password_reset_requested"
	EventPasswordReset          EventType = "user.password_reset"
	EventWatchlistUpdated       EventType = "user.watchlist_updated"
	EventFavoritesUpdated       EventType = "user.favorites_updated"
)

// UserEvent is the message body of an account event.
type UserEvent struct {
	EventID    string         `json:"eventId"`    // Unique event identifier
	Type       EventType      `json:"type"`       // Event type
	UserID     uuid.UUID      `json:"userId"`     // Subject of the event
	OccurredAt time.Time      `json:"occurredAt"` // Event time (UTC)
	Payload    map[string]any `json:"payload,omitempty"`
}
