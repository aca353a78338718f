package audit

import "time"

// Event is an immutable, append-only record of a mutating dashboard
// action.
//
// Invariants:
// - Events are never updated or deleted.
// - Audit capture is best-effort; it must never block or fail the
//   request that produced it.
type Event struct {
	ID string `json:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type"`

	// CallID and AgentID identify the target where applicable.
	CallID  string `json:"call_id,omitempty"`
	AgentID string `json:"agent_id,omitempty"`

	// ActorUsername is set for authenticated actions (the call and
	// config endpoints are open, so it is usually empty).
	ActorUsername string `json:"actor_username,omitempty"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeCallStarted    EventType = "call_started"
	EventTypeCallEnded      EventType = "call_ended"
	EventTypeConfigSaved    EventType = "config_saved"
	EventTypeUserRegistered EventType = "user_registered"
)
