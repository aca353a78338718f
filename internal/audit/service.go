package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided by
// design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records internal audit information. Audit is internal-only;
// these records are not exposed to dashboard users.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogCallStarted records that a call lifecycle began.
func (s *Service) LogCallStarted(ctx context.Context, callID, agentID string) error {
	return s.Append(ctx, Event{
		Type:    EventTypeCallStarted,
		CallID:  callID,
		AgentID: agentID,
		Message: "call started",
	})
}

// LogCallEnded records that a call was ended by the dashboard.
func (s *Service) LogCallEnded(ctx context.Context, callID, duration string) error {
	return s.Append(ctx, Event{
		Type:    EventTypeCallEnded,
		CallID:  callID,
		Message: "call ended after " + duration,
	})
}

// LogConfigSaved records that vendor credentials were replaced.
func (s *Service) LogConfigSaved(ctx context.Context, agentID string) error {
	return s.Append(ctx, Event{
		Type:    EventTypeConfigSaved,
		AgentID: agentID,
		Message: "api configuration saved",
	})
}

// LogUserRegistered records a new dashboard account.
func (s *Service) LogUserRegistered(ctx context.Context, username string) error {
	return s.Append(ctx, Event{
		Type:          EventTypeUserRegistered,
		ActorUsername: username,
		Message:       "user registered",
	})
}
