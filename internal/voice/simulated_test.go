package voice

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSimulatedStartCall(t *testing.T) {
	p := NewSimulatedProvider()
	res, err := p.StartCall(context.Background(), StartCallRequest{CallID: "call_1", AgentID: "agent_1", APIKey: "key"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(res.VendorCallID, "sim_") {
		t.Fatalf("unexpected vendor call id: %q", res.VendorCallID)
	}
}

func TestSimulatedStartCall_RequiresCredentials(t *testing.T) {
	p := NewSimulatedProvider()
	if _, err := p.StartCall(context.Background(), StartCallRequest{CallID: "call_1", AgentID: "agent_1"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := p.StartCall(context.Background(), StartCallRequest{CallID: "call_1", APIKey: "key"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSimulatedEndAndMute(t *testing.T) {
	p := NewSimulatedProvider()
	if err := p.EndCall(context.Background(), EndCallRequest{CallID: "call_1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := p.SetMute(context.Background(), SetMuteRequest{CallID: "call_1", Muted: true}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := p.EndCall(context.Background(), EndCallRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
