package store

import "time"

// User is a dashboard account. Usernames are unique; CreateUser rejects
// duplicates atomically.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	// Password holds the bcrypt hash, never the plaintext.
	Password string `json:"-"`
}

// NewUser carries the caller-supplied fields for CreateUser.
type NewUser struct {
	Username string
	Password string
}

// CallRecord is a bookkeeping entry for one voice-agent call. It models
// the lifecycle only; the live audio session belongs to the vendor.
//
// CallID is the externally visible lookup key and is unique across all
// records. ID is store-private and monotonically increasing.
type CallRecord struct {
	ID        int        `json:"id"`
	CallID    string     `json:"callId"`
	AgentID   string     `json:"agentId"`
	AgentName string     `json:"agentName"`
	Status    CallStatus `json:"status"`

	// Duration is a display string of the form "m:ss" ("0:00" until the
	// call ends, no hour component).
	Duration string `json:"duration"`

	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`

	// Timestamp is a human-readable start time for the history list,
	// e.g. "Today at 2:15 PM".
	Timestamp string `json:"timestamp"`
}

type CallStatus string

const (
	CallStatusCreated   CallStatus = "created"
	CallStatusOngoing   CallStatus = "ongoing"
	CallStatusCompleted CallStatus = "completed"
	CallStatusDropped   CallStatus = "dropped"
	CallStatusError     CallStatus = "error"
)

// NewCallRecord carries the caller-supplied fields for CreateCallRecord.
// The store assigns ID and keeps everything else verbatim.
type NewCallRecord struct {
	CallID    string
	AgentID   string
	AgentName string
	Status    CallStatus
	Duration  string
	StartTime time.Time
	EndTime   *time.Time
	Timestamp string
}

// CallRecordPatch is a partial update for UpdateCallRecord. Nil fields
// are left unchanged on the stored record.
type CallRecordPatch struct {
	Status   *CallStatus
	Duration *string
	EndTime  *time.Time
}

// APIConfig holds saved vendor credentials. At most one row is active at
// any time; SaveAPIConfig deactivates all prior rows before inserting.
type APIConfig struct {
	ID        int       `json:"id"`
	AgentID   string    `json:"agentId"`
	APIKey    string    `json:"apiKey"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAPIConfig carries the caller-supplied fields for SaveAPIConfig.
type NewAPIConfig struct {
	AgentID string
	APIKey  string
}
