package voice

import "context"

// Provider is the vendor-agnostic interface for the external voice-agent
// service. The live audio session is owned entirely by the vendor; this
// process only forwards lifecycle intents.
//
// Rules:
// - No vendor SDK calls outside this package.
// - Keep request/response types vendor-agnostic.
type Provider interface {
	Name() string
	HealthCheck(ctx context.Context) error

	StartCall(ctx context.Context, req StartCallRequest) (StartCallResult, error)
	EndCall(ctx context.Context, req EndCallRequest) error
	SetMute(ctx context.Context, req SetMuteRequest) error
}

// StartCallRequest asks the vendor to begin a session for an agent.
type StartCallRequest struct {
	// CallID is our bookkeeping identifier for the call.
	CallID string `json:"call_id"`

	AgentID string `json:"agent_id"`
	APIKey  string `json:"api_key"`
}

type StartCallResult struct {
	// VendorCallID is the vendor's identifier for the session.
	VendorCallID string `json:"vendor_call_id"`
}

type EndCallRequest struct {
	CallID string `json:"call_id"`
}

type SetMuteRequest struct {
	CallID string `json:"call_id"`
	Muted  bool   `json:"muted"`
}
