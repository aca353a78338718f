package calls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-dashboard/internal/audit"
	"voice-dashboard/internal/store"
	"voice-dashboard/internal/voice"
	"voice-dashboard/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("calls: invalid argument")

// defaultAgentName labels records until the vendor reports a real name.
const defaultAgentName = "Customer Support Agent"

// Service owns the call lifecycle bookkeeping: it generates call
// identifiers, forwards lifecycle intents to the voice vendor, and keeps
// the call history in the store. The store is the only holder of state;
// the vendor owns the live audio session.
type Service struct {
	store    store.Store
	provider voice.Provider
	audit    *audit.Service

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(st store.Store, provider voice.Provider, auditSvc *audit.Service) *Service {
	return &Service{store: st, provider: provider, audit: auditSvc, clock: time.Now}
}

type StartRequest struct {
	AgentID string `json:"agentId"`
	APIKey  string `json:"apiKey"`
}

type StartResult struct {
	CallID string           `json:"callId"`
	Status store.CallStatus `json:"status"`
}

// List returns the call history, most recent first.
func (s *Service) List(ctx context.Context) ([]store.CallRecord, error) {
	return s.store.GetAllCallRecords(ctx)
}

// Start begins a new call: it asks the vendor for a session and records
// a fresh CallRecord with status "created".
func (s *Service) Start(ctx context.Context, req StartRequest) (StartResult, error) {
	if req.AgentID == "" || req.APIKey == "" {
		return StartResult{}, ErrInvalidArgument
	}

	now := s.clock()
	callID := "call_" + uuid.NewString()

	if _, err := s.provider.StartCall(ctx, voice.StartCallRequest{
		CallID:  callID,
		AgentID: req.AgentID,
		APIKey:  req.APIKey,
	}); err != nil {
		return StartResult{}, fmt.Errorf("vendor start call: %w", err)
	}

	rec, err := s.store.CreateCallRecord(ctx, store.NewCallRecord{
		CallID:    callID,
		AgentID:   req.AgentID,
		AgentName: defaultAgentName,
		Status:    store.CallStatusCreated,
		Duration:  "0:00",
		StartTime: now,
		EndTime:   nil,
		Timestamp: humanTimestamp(now),
	})
	if err != nil {
		return StartResult{}, err
	}

	s.logAudit(ctx, func() error { return s.audit.LogCallStarted(ctx, rec.CallID, rec.AgentID) })
	return StartResult{CallID: rec.CallID, Status: rec.Status}, nil
}

// End completes the call: the duration is recomputed from the stored
// start time and the record is patched to "completed". Unknown call ids
// surface store.ErrNotFound.
func (s *Service) End(ctx context.Context, callID string) (store.CallRecord, error) {
	rec, err := s.store.GetCallRecordByCallID(ctx, callID)
	if err != nil {
		return store.CallRecord{}, err
	}

	if err := s.provider.EndCall(ctx, voice.EndCallRequest{CallID: callID}); err != nil {
		// The vendor session is advisory here; the bookkeeping still
		// completes so the history stays accurate.
		logger.From(ctx).Warn("vendor end call failed", "call_id", callID, "err", err)
	}

	end := s.clock()
	duration := FormatDuration(end.Sub(rec.StartTime))
	status := store.CallStatusCompleted

	updated, err := s.store.UpdateCallRecord(ctx, callID, store.CallRecordPatch{
		Status:   &status,
		Duration: &duration,
		EndTime:  &end,
	})
	if err != nil {
		return store.CallRecord{}, err
	}

	s.logAudit(ctx, func() error { return s.audit.LogCallEnded(ctx, callID, duration) })
	return updated, nil
}

// Mute forwards the mute toggle to the vendor. Deliberately stateless:
// CallRecord has no mute field, so nothing is persisted.
func (s *Service) Mute(ctx context.Context, callID string, muted bool) error {
	return s.provider.SetMute(ctx, voice.SetMuteRequest{CallID: callID, Muted: muted})
}

// logAudit runs an audit append best-effort: failures are logged and
// never propagate to the caller.
func (s *Service) logAudit(ctx context.Context, fn func() error) {
	if s.audit == nil {
		return
	}
	if err := fn(); err != nil {
		logger.From(ctx).Warn("audit append failed", "err", err)
	}
}
