package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is the in-memory Store implementation. One mutex serializes
// all operations; SaveAPIConfig's deactivate-then-insert must never
// interleave with a reader, or that reader could see zero or two active
// configs.
//
// Records are kept in append-order slices with side indexes keyed by the
// business key (callID, username) for O(1) lookup by either key.
type MemStore struct {
	mu sync.Mutex

	users     []User
	userIndex map[string]int // username -> slot

	callRecords []CallRecord
	callIndex   map[string]int // callID -> slot

	apiConfigs []APIConfig

	nextUserID   int
	nextRecordID int
	nextConfigID int

	clock func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		userIndex:    map[string]int{},
		callIndex:    map[string]int{},
		nextUserID:   1,
		nextRecordID: 1,
		nextConfigID: 1,
		clock:        time.Now,
	}
}

func (s *MemStore) GetUser(ctx context.Context, id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.userIndex[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.users[slot], nil
}

func (s *MemStore) CreateUser(ctx context.Context, nu NewUser) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.userIndex[nu.Username]; taken {
		return User{}, ErrUsernameExists
	}
	u := User{
		ID:       s.nextUserID,
		Username: nu.Username,
		Password: nu.Password,
	}
	s.nextUserID++
	s.userIndex[u.Username] = len(s.users)
	s.users = append(s.users, u)
	return u, nil
}

// cloneRecord deep-copies a call record so callers cannot reach stored
// state through the EndTime pointer.
func cloneRecord(rec CallRecord) CallRecord {
	if rec.EndTime != nil {
		end := *rec.EndTime
		rec.EndTime = &end
	}
	return rec
}

func (s *MemStore) GetAllCallRecords(ctx context.Context) ([]CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallRecord, len(s.callRecords))
	for i, rec := range s.callRecords {
		out[i] = cloneRecord(rec)
	}
	// Most recent first; SliceStable keeps insertion order on ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (s *MemStore) GetCallRecord(ctx context.Context, id int) (CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.callRecords {
		if rec.ID == id {
			return cloneRecord(rec), nil
		}
	}
	return CallRecord{}, ErrNotFound
}

func (s *MemStore) GetCallRecordByCallID(ctx context.Context, callID string) (CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.callIndex[callID]
	if !ok {
		return CallRecord{}, ErrNotFound
	}
	return cloneRecord(s.callRecords[slot]), nil
}

func (s *MemStore) CreateCallRecord(ctx context.Context, nr NewCallRecord) (CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := CallRecord{
		ID:        s.nextRecordID,
		CallID:    nr.CallID,
		AgentID:   nr.AgentID,
		AgentName: nr.AgentName,
		Status:    nr.Status,
		Duration:  nr.Duration,
		StartTime: nr.StartTime,
		EndTime:   nr.EndTime,
		Timestamp: nr.Timestamp,
	}
	s.nextRecordID++
	s.callIndex[rec.CallID] = len(s.callRecords)
	s.callRecords = append(s.callRecords, cloneRecord(rec))
	return cloneRecord(rec), nil
}

func (s *MemStore) UpdateCallRecord(ctx context.Context, callID string, patch CallRecordPatch) (CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.callIndex[callID]
	if !ok {
		return CallRecord{}, ErrNotFound
	}
	rec := s.callRecords[slot]
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Duration != nil {
		rec.Duration = *patch.Duration
	}
	if patch.EndTime != nil {
		end := *patch.EndTime
		rec.EndTime = &end
	}
	s.callRecords[slot] = rec
	return cloneRecord(rec), nil
}

func (s *MemStore) GetAPIConfig(ctx context.Context) (APIConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest active wins; SaveAPIConfig keeps at most one active, so the
	// scan is belt and braces.
	for i := len(s.apiConfigs) - 1; i >= 0; i-- {
		if s.apiConfigs[i].IsActive {
			return s.apiConfigs[i], nil
		}
	}
	return APIConfig{}, ErrNotFound
}

func (s *MemStore) SaveAPIConfig(ctx context.Context, nc NewAPIConfig) (APIConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiConfigs {
		s.apiConfigs[i].IsActive = false
	}
	cfg := APIConfig{
		ID:        s.nextConfigID,
		AgentID:   nc.AgentID,
		APIKey:    nc.APIKey,
		IsActive:  true,
		CreatedAt: s.clock().UTC(),
	}
	s.nextConfigID++
	s.apiConfigs = append(s.apiConfigs, cfg)
	return cfg, nil
}
