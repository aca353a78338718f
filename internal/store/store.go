package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned for lookups and updates that reference a
// record that does not exist. Mutating operations must surface it
// rather than silently no-op.
var ErrNotFound = errors.New("store: not found")

// ErrUsernameExists is returned by CreateUser when the username is
// already taken. The check and the insert happen under the same lock,
// so concurrent registrations cannot both succeed.
var ErrUsernameExists = errors.New("store: username exists")

// Store is the authoritative keeper of users, call records, and API
// configs for the process lifetime. It is the sole mutator of entity
// state; nothing survives a restart.
//
// Every method is a single atomic step: implementations must not let a
// concurrent caller observe a partial mutation (SaveAPIConfig's
// deactivate-then-insert in particular).
type Store interface {
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	// CreateUser inserts atomically and returns ErrUsernameExists when
	// the username is taken.
	CreateUser(ctx context.Context, u NewUser) (User, error)

	// GetAllCallRecords returns all records ordered by StartTime
	// descending; equal start times keep insertion order.
	GetAllCallRecords(ctx context.Context) ([]CallRecord, error)
	GetCallRecord(ctx context.Context, id int) (CallRecord, error)
	GetCallRecordByCallID(ctx context.Context, callID string) (CallRecord, error)
	CreateCallRecord(ctx context.Context, rec NewCallRecord) (CallRecord, error)
	// UpdateCallRecord merges patch over the record with the given
	// callID and returns the result, or ErrNotFound if absent.
	UpdateCallRecord(ctx context.Context, callID string, patch CallRecordPatch) (CallRecord, error)

	// GetAPIConfig returns the active config, or ErrNotFound if no
	// config has ever been saved.
	GetAPIConfig(ctx context.Context) (APIConfig, error)
	SaveAPIConfig(ctx context.Context, cfg NewAPIConfig) (APIConfig, error)
}
