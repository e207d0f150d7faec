// Package queue defines message payloads exchanged over the message broker.
package queue

// RegisterCreatedEvent is published when a survey record is stored. It
// carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type RegisterCreatedEvent struct {
	RegisterID  uint64 `json:"register_id"`
	Email       string `json:"email"`
	Universidad string `json:"universidad"`
	Carrera     string `json:"carrera"`
	CreatedBy   uint64 `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}
