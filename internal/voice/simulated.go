package voice

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("voice: invalid request")

// SimulatedProvider stands in for the real vendor API. It validates
// input and fabricates session identifiers; no network calls are made.
// A real adapter would hold the vendor REST client here.
type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider { return &SimulatedProvider{} }

func (p *SimulatedProvider) Name() string { return "simulated" }

func (p *SimulatedProvider) HealthCheck(ctx context.Context) error { return nil }

func (p *SimulatedProvider) StartCall(ctx context.Context, req StartCallRequest) (StartCallResult, error) {
	if req.AgentID == "" || req.APIKey == "" {
		return StartCallResult{}, ErrInvalidRequest
	}
	return StartCallResult{VendorCallID: "sim_" + uuid.NewString()}, nil
}

func (p *SimulatedProvider) EndCall(ctx context.Context, req EndCallRequest) error {
	if req.CallID == "" {
		return ErrInvalidRequest
	}
	return nil
}

func (p *SimulatedProvider) SetMute(ctx context.Context, req SetMuteRequest) error {
	if req.CallID == "" {
		return ErrInvalidRequest
	}
	return nil
}
